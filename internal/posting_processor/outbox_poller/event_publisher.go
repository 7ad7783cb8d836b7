package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nonprofit-fund-ledger/internal/domain/outbox"
	"github.com/nonprofit-fund-ledger/internal/domain/report"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/platform/messaging/producers"
)

// EventPublisher delivers posted-entry events from the outbox downstream
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// EventPublisherImpl implements EventPublisher. Each outbox message is
// published to the ledger events topic and recorded in the audit store
// before being marked processed.
type EventPublisherImpl struct {
	outboxRepo outbox.Repository
	auditRepo  report.AuditRepository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewEventPublisher creates a new publisher
func NewEventPublisher(
	outboxRepo outbox.Repository,
	auditRepo report.AuditRepository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &EventPublisherImpl{
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishEvent processes a single outbox message
func (p *EventPublisherImpl) PublishEvent(ctx context.Context, message *outbox.Message) error {
	event, err := message.GetEvent()
	if err != nil {
		p.logger.Error("Failed to unmarshal posted-entry event from outbox payload",
			"outbox_id", message.ID, "journal_entry_id", message.JournalEntryID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	// Add correlation ID to logger
	logger := p.logger
	if event.CorrelationID != "" {
		logger = p.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Attempting to publish outbox message downstream", "outbox_id", message.ID, "journal_entry_id", message.JournalEntryID)

	// The producer writes synchronously with full acknowledgement; the
	// outbox status transition below depends on this result.
	if err := p.producer.Publish(ctx, event.JournalEntryID.String(), event); err != nil {
		logger.Error("Failed to publish posted-entry event", "outbox_id", message.ID, "journal_entry_id", message.JournalEntryID, "error", err)
		return fmt.Errorf("failed to publish event for entry %s: %w", event.JournalEntryID.String(), err)
	}

	// Record the audit document. Redeliveries of an already-recorded entry
	// are expected and harmless.
	record := report.NewPostedEntryRecord(event)
	if err := p.auditRepo.Record(ctx, record); err != nil {
		if errors.Is(err, report.ErrDuplicateRecord{}) {
			logger.Info("Posted-entry audit record already exists", "journal_entry_id", message.JournalEntryID)
		} else {
			logger.Error("Failed to write posted-entry audit record", "journal_entry_id", message.JournalEntryID, "error", err)
			return fmt.Errorf("failed to record audit entry for %s: %w", event.JournalEntryID.String(), err)
		}
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "journal_entry_id", message.JournalEntryID, "error", err,
		)
		return fmt.Errorf("event for %s published, but failed to mark outbox %d as PROCESSED: %w", message.JournalEntryID, message.ID, err)
	}

	logger.Info("Outbox message successfully processed and marked as PROCESSED", "outbox_id", message.ID, "journal_entry_id", message.JournalEntryID)
	return nil
}
