package components

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/posting_processor/service"
)

// PostingManagerImpl implements the PostingManager interface
type PostingManagerImpl struct {
	journalRepo journal.Repository
	logger      *slog.Logger
}

// NewPostingManager creates a new posting manager
func NewPostingManager(journalRepo journal.Repository, logger *slog.Logger) service.PostingManager {
	return &PostingManagerImpl{
		journalRepo: journalRepo,
		logger:      logger,
	}
}

// LockAndPost acquires a row lock on the journal entry, re-checks the
// double-entry invariant and marks the entry posted. The caller owns the
// transaction; nothing is committed here.
func (m *PostingManagerImpl) LockAndPost(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) (*journal.Entry, error) {
	repo := m.journalRepo.WithTx(tx)

	entry, err := repo.LockForPosting(ctx, request.JournalEntryID)
	if err != nil {
		return nil, err
	}

	// Another consumer may have posted the entry between the idempotency
	// check and the row lock.
	if entry.Status == journal.StatusPosted {
		m.logger.Info("Journal entry posted concurrently, nothing to do",
			"journal_entry_id", entry.ID.String(),
		)
		return entry, nil
	}

	if err := entry.MarkPosted(); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist posted entry %s: %w", entry.ID.String(), err)
	}

	m.logger.Info("Journal entry marked posted",
		"journal_entry_id", entry.ID.String(),
		"entity_id", entry.EntityID.String(),
	)
	return entry, nil
}
