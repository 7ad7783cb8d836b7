package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/posting_processor/service"
)

// FailureRecorderImpl implements the FailureRecorder interface
type FailureRecorderImpl struct {
	journalRepo journal.Repository
	logger      *slog.Logger
}

// NewFailureRecorder creates a new failure recorder
func NewFailureRecorder(journalRepo journal.Repository, logger *slog.Logger) service.FailureRecorder {
	return &FailureRecorderImpl{
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// RecordFailure marks the journal entry failed with the given reason,
// returning it to an editable state.
func (r *FailureRecorderImpl) RecordFailure(ctx context.Context, request *shared.PostingRequest, failureReason string) error {
	entry, err := r.journalRepo.GetByID(ctx, request.JournalEntryID)
	if err != nil {
		return fmt.Errorf("failed to load entry %s to record failure: %w", request.JournalEntryID.String(), err)
	}

	if err := entry.MarkFailed(failureReason); err != nil {
		// The entry left the pending state behind our back; there is
		// nothing meaningful to record anymore.
		r.logger.Warn("Cannot mark journal entry failed",
			"journal_entry_id", entry.ID.String(),
			"status", entry.Status,
			"error", err,
		)
		return nil
	}

	if err := r.journalRepo.Update(ctx, entry); err != nil {
		return fmt.Errorf("failed to persist failure for entry %s: %w", entry.ID.String(), err)
	}

	r.logger.Info("Posting failure recorded",
		"journal_entry_id", entry.ID.String(),
		"failure_reason", failureReason,
		"correlation_id", request.CorrelationID,
	)
	return nil
}
