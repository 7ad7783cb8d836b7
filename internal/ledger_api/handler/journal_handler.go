package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/middleware"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/service"
	"github.com/shopspring/decimal"
)

// JournalHandler handles HTTP requests for journal entry operations
type JournalHandler struct {
	journalService service.JournalService
	logger         *slog.Logger
}

// NewJournalHandler creates a new journal entry handler
func NewJournalHandler(logger *slog.Logger, journalService service.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// Create creates a draft journal entry with its transactions
func (h *JournalHandler) Create(c *gin.Context) {
	var req CreateJournalEntryRequest
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
	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		RespondBadRequest(c, "Invalid timestamp, expected RFC 3339")
		return
	}
	unitID, _, err := parseOptionalIDs(req.UnitID, "")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	lines := make([]service.EntryLine, 0, len(req.Transactions))
	for _, lineReq := range req.Transactions {
		line, err := parseEntryLine(lineReq)
		if err != nil {
			RespondBadRequest(c, err.Error())
			return
		}
		lines = append(lines, line)
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), service.CreateEntryParams{
		EntityID:    entityID,
		Timestamp:   timestamp,
		Description: req.Description,
		UnitID:      unitID,
		Lines:       lines,
	})
	if err != nil {
		h.respondCreateError(c, err)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// Update replaces a draft journal entry's header and transactions. Entries
// that have left the editable draft/failed states are rejected with 409.
func (h *JournalHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid journal entry ID")
		return
	}

	var req UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		RespondBadRequest(c, "Invalid timestamp, expected RFC 3339")
		return
	}
	unitID, _, err := parseOptionalIDs(req.UnitID, "")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	lines := make([]service.EntryLine, 0, len(req.Transactions))
	for _, lineReq := range req.Transactions {
		line, err := parseEntryLine(lineReq)
		if err != nil {
			RespondBadRequest(c, err.Error())
			return
		}
		lines = append(lines, line)
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), id, service.UpdateEntryParams{
		Timestamp:   timestamp,
		Description: req.Description,
		UnitID:      unitID,
		Lines:       lines,
	})
	if err != nil {
		var concurrent journal.ErrConcurrentModification
		switch {
		case errors.Is(err, journal.ErrEntryNotFound{}):
			RespondNotFound(c, "Journal entry not found")
		case errors.Is(err, journal.ErrEntryNotDraft),
			errors.Is(err, journal.ErrEntryLocked):
			RespondConflict(c, err.Error())
		case errors.As(err, &concurrent):
			RespondConflict(c, err.Error())
		default:
			h.respondCreateError(c, err)
		}
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// Transfer records an inter-fund transfer as one balanced journal entry
func (h *JournalHandler) Transfer(c *gin.Context) {
	var req FundTransferRequest
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
	fromFundID, err := uuid.Parse(req.FromFundID)
	if err != nil {
		RespondBadRequest(c, "Invalid source fund ID")
		return
	}
	toFundID, err := uuid.Parse(req.ToFundID)
	if err != nil {
		RespondBadRequest(c, "Invalid target fund ID")
		return
	}
	sourceAccountID, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid source account ID")
		return
	}
	targetAccountID, err := uuid.Parse(req.TargetAccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid target account ID")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		RespondBadRequest(c, "Invalid amount")
		return
	}
	timestamp, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		RespondBadRequest(c, "Invalid timestamp, expected RFC 3339")
		return
	}

	entry, err := h.journalService.RecordFundTransfer(c.Request.Context(), service.FundTransferParams{
		EntityID:        entityID,
		FromFundID:      fromFundID,
		ToFundID:        toFundID,
		SourceAccountID: sourceAccountID,
		TargetAccountID: targetAccountID,
		Amount:          amount,
		Timestamp:       timestamp,
		Description:     req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrSameFund) {
			RespondBadRequest(c, err.Error())
			return
		}
		if errors.Is(err, fund.ErrFundNotFound{}) {
			RespondNotFound(c, "Fund not found")
			return
		}
		h.respondCreateError(c, err)
		return
	}

	RespondCreated(c, mapEntryToResponse(entry))
}

// GetByID retrieves a journal entry with its transactions, returns 404 if not found
func (h *JournalHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid journal entry ID")
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, journal.ErrEntryNotFound{}) {
			RespondNotFound(c, "Journal entry not found")
			return
		}
		h.logger.Error("Failed to get journal entry", "journal_entry_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

// Post submits a journal entry for asynchronous posting. The double-entry
// invariant is checked here; an unbalanced entry is rejected with 422.
func (h *JournalHandler) Post(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid journal entry ID")
		return
	}

	correlationID := middleware.GetCorrelationID(c)
	entry, err := h.journalService.SubmitForPosting(c.Request.Context(), id, correlationID)
	if err != nil {
		var unbalanced ledger.UnbalancedEntryError
		switch {
		case errors.Is(err, journal.ErrEntryNotFound{}):
			RespondNotFound(c, "Journal entry not found")
		case errors.As(err, &unbalanced):
			RespondUnprocessable(c, "UNBALANCED_ENTRY", unbalanced.Error())
		case errors.Is(err, journal.ErrNoTransactions):
			RespondUnprocessable(c, "EMPTY_ENTRY", err.Error())
		case errors.Is(err, journal.ErrEntryNotDraft):
			RespondConflict(c, err.Error())
		default:
			h.logger.Error("Failed to submit journal entry for posting", "journal_entry_id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondAccepted(c, mapEntryToResponse(entry))
}

// Lock freezes a posted journal entry against modification
func (h *JournalHandler) Lock(c *gin.Context) {
	h.toggleLock(c, h.journalService.LockEntry)
}

// Unlock releases a locked journal entry
func (h *JournalHandler) Unlock(c *gin.Context) {
	h.toggleLock(c, h.journalService.UnlockEntry)
}

func (h *JournalHandler) toggleLock(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) (*journal.Entry, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid journal entry ID")
		return
	}

	entry, err := apply(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrEntryNotFound{}):
			RespondNotFound(c, "Journal entry not found")
		case errors.Is(err, journal.ErrEntryNotPosted),
			errors.Is(err, journal.ErrEntryLocked),
			errors.Is(err, journal.ErrEntryNotLocked):
			RespondConflict(c, err.Error())
		default:
			h.logger.Error("Failed to change journal entry lock", "journal_entry_id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapEntryToResponse(entry))
}

func (h *JournalHandler) respondCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound{}):
		RespondNotFound(c, "Account not found")
	case errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrEntityMismatch),
		errors.Is(err, journal.ErrInvalidAmount),
		errors.Is(err, journal.ErrInvalidTxType):
		RespondBadRequest(c, err.Error())
	default:
		h.logger.Error("Failed to create journal entry", "error", err)
		RespondInternalError(c)
	}
}

func parseEntryLine(req JournalLineRequest) (service.EntryLine, error) {
	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return service.EntryLine{}, errors.New("Invalid account ID: " + req.AccountID)
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return service.EntryLine{}, errors.New("Invalid amount: " + req.Amount)
	}
	line := service.EntryLine{
		AccountID:   accountID,
		Type:        ledger.TxType(req.Type),
		Amount:      amount,
		Description: req.Description,
	}
	if req.FundID != "" {
		fundID, err := uuid.Parse(req.FundID)
		if err != nil {
			return service.EntryLine{}, errors.New("Invalid fund ID: " + req.FundID)
		}
		line.FundID = &fundID
	}
	return line, nil
}
