package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/service"
)

// AccountHandler handles HTTP requests for chart-of-accounts operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create creates a new account in an entity's chart of accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}
	unitID, fundID, err := parseOptionalIDs(req.UnitID, req.FundID)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	acc, err := h.accountService.CreateAccount(
		c.Request.Context(),
		entityID,
		req.Code,
		req.Name,
		ledger.BalanceType(req.BalanceType),
		ledger.Classification(req.Classification),
		unitID,
		fundID,
	)
	if err != nil {
		var dupErr account.ErrDuplicateCode
		switch {
		case errors.As(err, &dupErr):
			RespondConflict(c, "Account with code already exists in entity: "+dupErr.Code)
		case errors.Is(err, account.ErrEmptyCode),
			errors.Is(err, account.ErrEmptyName),
			errors.Is(err, account.ErrInvalidBalanceType),
			errors.Is(err, account.ErrInvalidClassification):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to create account", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByID retrieves an account by its ID, returns 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	acc, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "account_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// List returns all accounts of an entity ordered by code
func (h *AccountHandler) List(c *gin.Context) {
	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), entityID)
	if err != nil {
		h.logger.Error("Failed to list accounts", "entity_id", entityID, "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		responses = append(responses, mapAccountToResponse(acc))
	}
	RespondOK(c, responses)
}

// GetLedger returns paginated materialized ledger rows for an account
func (h *AccountHandler) GetLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	rows, total, err := h.accountService.GetAccountLedger(c.Request.Context(), id, pagination.Page, pagination.PerPage)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account ledger", "account_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]LedgerRowResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, mapLedgerRowToResponse(row))
	}
	RespondWithPaginatedData(c, http.StatusOK, responses, pagination.Page, pagination.PerPage, int(total))
}

// parseOptionalIDs parses the optional unit and fund ID strings of a request.
func parseOptionalIDs(unitID, fundID string) (*uuid.UUID, *uuid.UUID, error) {
	var unitPtr, fundPtr *uuid.UUID
	if unitID != "" {
		parsed, err := uuid.Parse(unitID)
		if err != nil {
			return nil, nil, errors.New("Invalid unit ID")
		}
		unitPtr = &parsed
	}
	if fundID != "" {
		parsed, err := uuid.Parse(fundID)
		if err != nil {
			return nil, nil, errors.New("Invalid fund ID")
		}
		fundPtr = &parsed
	}
	return unitPtr, fundPtr, nil
}
