package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/outbox"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/posting_processor/service"
)

// OutboxManagerImpl implements the OutboxManager interface
type OutboxManagerImpl struct {
	outboxRepo outbox.Repository
	logger     *slog.Logger
}

// NewOutboxManager creates a new outbox manager
func NewOutboxManager(outboxRepo outbox.Repository, logger *slog.Logger) service.OutboxManager {
	return &OutboxManagerImpl{
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// CreateOutboxEntry writes the posted-entry event to the outbox within the
// posting transaction, so the event exists iff the entry is posted.
func (m *OutboxManagerImpl) CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest, entry *journal.Entry) error {
	debits, credits := entry.Totals()
	event := &shared.EntryPostedEvent{
		JournalEntryID: entry.ID,
		EntityID:       entry.EntityID,
		UnitID:         entry.UnitID,
		Timestamp:      entry.Timestamp,
		Description:    entry.Description,
		TotalDebits:    debits,
		TotalCredits:   credits,
		CorrelationID:  request.CorrelationID,
		PostedAt:       time.Now().UTC(),
	}

	message, err := outbox.NewMessage(event)
	if err != nil {
		return fmt.Errorf("failed to build outbox message for entry %s: %w", entry.ID.String(), err)
	}

	if err := m.outboxRepo.WithTx(tx).Create(ctx, message); err != nil {
		return fmt.Errorf("failed to create outbox entry for %s: %w", entry.ID.String(), err)
	}

	m.logger.Debug("Outbox entry created",
		"journal_entry_id", entry.ID.String(),
		"correlation_id", request.CorrelationID,
	)
	return nil
}
