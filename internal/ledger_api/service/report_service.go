package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/report"
	"github.com/nonprofit-fund-ledger/internal/ledger"
)

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	journalRepo journal.Repository
	archiveRepo report.ArchiveRepository
	logger      *slog.Logger
}

// NewReportService creates a new digest and summary service
func NewReportService(journalRepo journal.Repository, archiveRepo report.ArchiveRepository, logger *slog.Logger) ReportService {
	return &ReportServiceImpl{
		journalRepo: journalRepo,
		archiveRepo: archiveRepo,
		logger:      logger,
	}
}

// BuildDigest materializes the entity's ledger rows for the filter range and
// runs the aggregation engine over them. The finished digest is archived; an
// archive failure is logged but never fails the request.
func (s *ReportServiceImpl) BuildDigest(ctx context.Context, entityID uuid.UUID, filters ledger.Filters, correlationID string) (*ledger.Digest, error) {
	if filters.FromDate.After(filters.ToDate) {
		return nil, ledger.ErrInvalidDateRange
	}

	rows, err := s.journalRepo.ListRows(ctx, entityID, filters.FromDate, filters.ToDate)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize ledger rows: %w", err)
	}

	digest, err := ledger.BuildDigest(rows, filters)
	if err != nil {
		return nil, err
	}

	s.archive(ctx, entityID, correlationID, digest)
	return digest, nil
}

// Summarize returns the flat debit/credit totals of the entity's rows in the
// date range
func (s *ReportServiceImpl) Summarize(ctx context.Context, entityID uuid.UUID, from, to time.Time) (ledger.Totals, error) {
	if from.After(to) {
		return ledger.Totals{}, ledger.ErrInvalidDateRange
	}

	rows, err := s.journalRepo.ListRows(ctx, entityID, from, to)
	if err != nil {
		return ledger.Totals{}, fmt.Errorf("failed to materialize ledger rows: %w", err)
	}

	return ledger.Summarize(rows), nil
}

// GetSnapshot retrieves an archived digest snapshot
func (s *ReportServiceImpl) GetSnapshot(ctx context.Context, id uuid.UUID) (*report.DigestSnapshot, error) {
	return s.archiveRepo.GetByID(ctx, id)
}

// ListSnapshots returns paginated archived snapshots for an entity, newest
// first, together with the total count
func (s *ReportServiceImpl) ListSnapshots(ctx context.Context, entityID uuid.UUID, page, perPage int) ([]*report.DigestSnapshot, int64, error) {
	offset := (page - 1) * perPage
	snapshots, err := s.archiveRepo.ListByEntity(ctx, entityID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.archiveRepo.CountByEntity(ctx, entityID)
	if err != nil {
		return nil, 0, err
	}
	return snapshots, total, nil
}

func (s *ReportServiceImpl) archive(ctx context.Context, entityID uuid.UUID, correlationID string, digest *ledger.Digest) {
	payload, err := json.Marshal(digest)
	if err != nil {
		s.logger.Error("failed to serialize digest snapshot",
			"entity_id", entityID,
			"correlation_id", correlationID,
			"error", err)
		return
	}

	snapshot := report.NewDigestSnapshot(entityID, correlationID, digest, payload)
	if err := s.archiveRepo.Archive(ctx, snapshot); err != nil {
		s.logger.Error("failed to archive digest snapshot",
			"entity_id", entityID,
			"snapshot_id", snapshot.ID,
			"correlation_id", correlationID,
			"error", err)
		return
	}

	s.logger.Info("digest snapshot archived",
		"entity_id", entityID,
		"snapshot_id", snapshot.ID,
		"correlation_id", correlationID)
}
