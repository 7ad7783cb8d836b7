package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/nonprofit-fund-ledger/internal/platform/persistence"
)

type ProcessingServiceImpl struct {
	pgDB            *persistence.PostgresDB
	validator       EntryValidator
	postingManager  PostingManager
	outboxManager   OutboxManager
	failureRecorder FailureRecorder
	logger          *slog.Logger
}

func NewProcessingService(
	pgDB *persistence.PostgresDB,
	validator EntryValidator,
	postingManager PostingManager,
	outboxManager OutboxManager,
	failureRecorder FailureRecorder,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		pgDB:            pgDB,
		validator:       validator,
		postingManager:  postingManager,
		outboxManager:   outboxManager,
		failureRecorder: failureRecorder,
		logger:          logger,
	}
}

// ProcessPosting handles the core logic for posting a journal entry: the
// entry is locked, re-validated against the double-entry invariant and
// transitioned to posted, with the posted-entry event written to the outbox
// in the same database transaction.
func (s *ProcessingServiceImpl) ProcessPosting(ctx context.Context, request *shared.PostingRequest) error {
	logger := s.logger
	if request.CorrelationID != "" {
		logger = s.logger.With("correlation_id", request.CorrelationID)
	}

	logger.Info("Processing posting request", "journal_entry_id", request.JournalEntryID.String(), "entity_id", request.EntityID.String())

	// 1. Validate the request
	if err := s.validator.Validate(ctx, request); err != nil {
		logger.Error("Posting request validation failed", "journal_entry_id", request.JournalEntryID.String(), "error", err)

		if errors.Is(err, journal.ErrEntryNotFound{}) {
			// Nothing to mark failed; acknowledge the message.
			return nil
		}

		var failureReason string
		switch {
		case errors.Is(err, journal.ErrEntryLocked):
			failureReason = string(shared.FailureReasonEntryLocked)
		case errors.Is(err, journal.ErrEntryNotPending):
			failureReason = string(shared.FailureReasonNotPending)
		case errors.Is(err, journal.ErrNoTransactions):
			failureReason = string(shared.FailureReasonNoTransactions)
		default:
			failureReason = string(shared.FailureReasonUnknownError)
		}

		if recordErr := s.failureRecorder.RecordFailure(ctx, request, failureReason); recordErr != nil {
			logger.Error("Failed to record posting failure", "journal_entry_id", request.JournalEntryID.String(), "error", recordErr)
		}

		return nil // Return nil to Kafka consumer to acknowledge the message
	}

	// 2. Check idempotency
	skip, err := s.validator.CheckIdempotency(ctx, request)
	if err != nil {
		return err // Let Kafka retry
	}
	if skip {
		logger.Info("Journal entry already posted, skipping", "journal_entry_id", request.JournalEntryID.String())
		return nil
	}

	// 3. Begin database transaction
	var tx pgx.Tx
	tx, err = s.pgDB.Pool().Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin database transaction", "journal_entry_id", request.JournalEntryID.String(), "error", err)
		return fmt.Errorf("failed to begin DB transaction for %s: %w", request.JournalEntryID.String(), err)
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Panic recovered, rolling back transaction", "panic", p, "journal_entry_id", request.JournalEntryID.String())
			_ = tx.Rollback(ctx)
			panic(p) // Re-panic
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Error("Failed to rollback transaction after error", "rollback_error", rbErr, "original_error", err, "journal_entry_id", request.JournalEntryID.String())
			}
		}
	}()

	// 4. Lock the entry and mark it posted
	entry, err := s.postingManager.LockAndPost(ctx, tx, request)
	if err != nil {
		var unbalanced ledger.UnbalancedEntryError
		if errors.As(err, &unbalanced) {
			_ = tx.Rollback(ctx)
			err = nil // suppress the deferred rollback path
			if recordErr := s.failureRecorder.RecordFailure(ctx, request, string(shared.FailureReasonUnbalancedEntry)); recordErr != nil {
				logger.Error("Failed to record unbalanced entry failure", "journal_entry_id", request.JournalEntryID.String(), "error", recordErr)
			}
			return nil // Return nil to Kafka consumer
		}
		if errors.Is(err, journal.ErrEntryNotFound{}) {
			// Entry vanished between validation and locking; the deferred
			// rollback releases the transaction.
			return nil
		}

		// For other errors, let them propagate for retry
		return err
	}

	// 5. Write the posted-entry event to the outbox
	if err = s.outboxManager.CreateOutboxEntry(ctx, tx, request, entry); err != nil {
		return err // Let the defer handle rollback
	}

	// 6. Commit transaction
	if err = tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit database transaction",
			"journal_entry_id", request.JournalEntryID.String(),
			"entity_id", request.EntityID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to commit DB transaction for entry %s: %w", request.JournalEntryID.String(), err)
	}

	logger.Info("Journal entry posted", "journal_entry_id", request.JournalEntryID.String(), "entity_id", request.EntityID.String())
	return nil
}
