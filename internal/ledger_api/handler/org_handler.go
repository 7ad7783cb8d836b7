package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/domain/unit"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/service"
)

// OrgHandler handles HTTP requests for fund and entity unit operations
type OrgHandler struct {
	orgService service.OrgService
	logger     *slog.Logger
}

// NewOrgHandler creates a new fund and entity unit handler
func NewOrgHandler(logger *slog.Logger, orgService service.OrgService) *OrgHandler {
	return &OrgHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// CreateFund creates a new fund
func (h *OrgHandler) CreateFund(c *gin.Context) {
	var req CreateFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	f, err := h.orgService.CreateFund(c.Request.Context(), entityID, req.Code, req.Name)
	if err != nil {
		if errors.Is(err, fund.ErrEmptyCode) || errors.Is(err, fund.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create fund", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapFundToResponse(f))
}

// GetFund retrieves a fund by its ID, returns 404 if not found
func (h *OrgHandler) GetFund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid fund ID")
		return
	}

	f, err := h.orgService.GetFundByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, fund.ErrFundNotFound{}) {
			RespondNotFound(c, "Fund not found")
			return
		}
		h.logger.Error("Failed to get fund", "fund_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapFundToResponse(f))
}

// ListFunds returns all funds of an entity ordered by code
func (h *OrgHandler) ListFunds(c *gin.Context) {
	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	funds, err := h.orgService.ListFunds(c.Request.Context(), entityID)
	if err != nil {
		h.logger.Error("Failed to list funds", "entity_id", entityID, "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]FundResponse, 0, len(funds))
	for _, f := range funds {
		responses = append(responses, mapFundToResponse(f))
	}
	RespondOK(c, responses)
}

// CreateUnit creates a new entity unit
func (h *OrgHandler) CreateUnit(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	u, err := h.orgService.CreateUnit(c.Request.Context(), entityID, req.Name)
	if err != nil {
		if errors.Is(err, unit.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create unit", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapUnitToResponse(u))
}

// GetUnit retrieves an entity unit by its ID, returns 404 if not found
func (h *OrgHandler) GetUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid unit ID")
		return
	}

	u, err := h.orgService.GetUnitByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, unit.ErrUnitNotFound{}) {
			RespondNotFound(c, "Entity unit not found")
			return
		}
		h.logger.Error("Failed to get unit", "unit_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapUnitToResponse(u))
}

// ListUnits returns all units of an entity ordered by name
func (h *OrgHandler) ListUnits(c *gin.Context) {
	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	units, err := h.orgService.ListUnits(c.Request.Context(), entityID)
	if err != nil {
		h.logger.Error("Failed to list units", "entity_id", entityID, "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		responses = append(responses, mapUnitToResponse(u))
	}
	RespondOK(c, responses)
}
