package components

import (
	"context"
	"log/slog"

	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/posting_processor/service"
)

// EntryValidatorImpl implements the EntryValidator interface
type EntryValidatorImpl struct {
	journalRepo journal.Repository
	logger      *slog.Logger
}

// NewEntryValidator creates a new entry validator
func NewEntryValidator(journalRepo journal.Repository, logger *slog.Logger) service.EntryValidator {
	return &EntryValidatorImpl{
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// Validate checks that the referenced journal entry can be posted at all.
// The balance invariant itself is re-checked under the row lock by the
// posting manager.
func (v *EntryValidatorImpl) Validate(ctx context.Context, request *shared.PostingRequest) error {
	entry, err := v.journalRepo.GetByID(ctx, request.JournalEntryID)
	if err != nil {
		return err
	}

	if entry.Locked {
		return journal.ErrEntryLocked
	}
	if len(entry.Transactions) == 0 {
		return journal.ErrNoTransactions
	}
	if entry.Status != journal.StatusPending && entry.Status != journal.StatusPosted {
		return journal.ErrEntryNotPending
	}

	return nil
}

// CheckIdempotency reports whether the entry was already posted, in which
// case the request is a redelivery and can be acknowledged without work.
func (v *EntryValidatorImpl) CheckIdempotency(ctx context.Context, request *shared.PostingRequest) (bool, error) {
	entry, err := v.journalRepo.GetByID(ctx, request.JournalEntryID)
	if err != nil {
		return false, err
	}

	if entry.Status == journal.StatusPosted {
		v.logger.Info("Journal entry already posted",
			"journal_entry_id", request.JournalEntryID.String(),
			"correlation_id", request.CorrelationID,
		)
		return true, nil
	}

	return false, nil
}
