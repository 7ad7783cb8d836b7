package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/report"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/middleware"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/service"
)

const dateLayout = "2006-01-02"

// ReportHandler handles HTTP requests for digest and summary operations
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GetDigest builds the categorized income statement digest for a date range
func (h *ReportHandler) GetDigest(c *gin.Context) {
	var params DigestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid digest parameters: "+err.Error())
		return
	}

	entityID, err := uuid.Parse(params.EntityID)
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}
	fromDate, err := time.Parse(dateLayout, params.FromDate)
	if err != nil {
		RespondBadRequest(c, "Invalid from_date, expected YYYY-MM-DD")
		return
	}
	toDate, err := time.Parse(dateLayout, params.ToDate)
	if err != nil {
		RespondBadRequest(c, "Invalid to_date, expected YYYY-MM-DD")
		return
	}

	filters := ledger.Filters{
		FromDate: fromDate,
		// The to date is inclusive: extend it to the end of the day.
		ToDate: toDate.Add(24*time.Hour - time.Nanosecond),
		ByUnit: params.ByUnit,
	}
	if params.UnitID != "" {
		unitID, err := uuid.Parse(params.UnitID)
		if err != nil {
			RespondBadRequest(c, "Invalid unit ID")
			return
		}
		filters.UnitID = unitID
	}
	if params.FundID != "" {
		fundID, err := uuid.Parse(params.FundID)
		if err != nil {
			RespondBadRequest(c, "Invalid fund ID")
			return
		}
		filters.FundID = fundID
	}

	correlationID := middleware.GetCorrelationID(c)
	digest, err := h.reportService.BuildDigest(c.Request.Context(), entityID, filters, correlationID)
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	RespondOK(c, digest)
}

// GetSummary returns the flat debit and credit totals for a date range
func (h *ReportHandler) GetSummary(c *gin.Context) {
	var params SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid summary parameters: "+err.Error())
		return
	}

	entityID, err := uuid.Parse(params.EntityID)
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}
	fromDate, err := time.Parse(dateLayout, params.FromDate)
	if err != nil {
		RespondBadRequest(c, "Invalid from_date, expected YYYY-MM-DD")
		return
	}
	toDate, err := time.Parse(dateLayout, params.ToDate)
	if err != nil {
		RespondBadRequest(c, "Invalid to_date, expected YYYY-MM-DD")
		return
	}

	totals, err := h.reportService.Summarize(c.Request.Context(), entityID, fromDate, toDate.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		h.respondReportError(c, err)
		return
	}

	RespondOK(c, totals)
}

// GetSnapshot retrieves one archived digest snapshot, returns 404 if not found
func (h *ReportHandler) GetSnapshot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid snapshot ID")
		return
	}

	snapshot, err := h.reportService.GetSnapshot(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, report.ErrSnapshotNotFound{}) {
			RespondNotFound(c, "Digest snapshot not found")
			return
		}
		h.logger.Error("Failed to get digest snapshot", "snapshot_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	// Return the digest exactly as it was rendered when archived.
	RespondOK(c, gin.H{
		"snapshot": snapshot,
		"digest":   json.RawMessage(snapshot.Payload),
	})
}

// ListSnapshots returns paginated archived snapshots for an entity
func (h *ReportHandler) ListSnapshots(c *gin.Context) {
	entityID, err := uuid.Parse(c.Query("entity_id"))
	if err != nil {
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	snapshots, total, err := h.reportService.ListSnapshots(c.Request.Context(), entityID, pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to list digest snapshots", "entity_id", entityID, "error", err)
		RespondInternalError(c)
		return
	}

	RespondWithPaginatedData(c, http.StatusOK, snapshots, pagination.Page, pagination.PerPage, int(total))
}

func (h *ReportHandler) respondReportError(c *gin.Context, err error) {
	var unbalanced ledger.UnbalancedEntryError
	switch {
	case errors.Is(err, ledger.ErrInvalidDateRange):
		RespondBadRequest(c, err.Error())
	case errors.As(err, &unbalanced):
		RespondUnprocessable(c, "UNBALANCED_ENTRY", unbalanced.Error())
	default:
		h.logger.Error("Failed to build report", "error", err)
		RespondInternalError(c)
	}
}
