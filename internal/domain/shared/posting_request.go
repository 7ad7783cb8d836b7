package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingRequest defines a Kafka message asking the processor to post a
// drafted journal entry.
type PostingRequest struct {
	JournalEntryID uuid.UUID `json:"journal_entry_id"`
	EntityID       uuid.UUID `json:"entity_id"`
	CorrelationID  string    `json:"correlation_id"`
	RequestedAt    time.Time `json:"requested_at"`
}

// NewPostingRequest creates a posting request for a drafted journal entry.
func NewPostingRequest(journalEntryID, entityID uuid.UUID, correlationID string) *PostingRequest {
	return &PostingRequest{
		JournalEntryID: journalEntryID,
		EntityID:       entityID,
		CorrelationID:  correlationID,
		RequestedAt:    time.Now(),
	}
}

// EntryPostedEvent is the payload written to the transactional outbox when a
// journal entry transitions to posted, and later published to the ledger
// events topic and archived in the audit store.
type EntryPostedEvent struct {
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	EntityID       uuid.UUID       `json:"entity_id"`
	UnitID         *uuid.UUID      `json:"unit_id,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	Description    string          `json:"description,omitempty"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	CorrelationID  string          `json:"correlation_id,omitempty"`
	PostedAt       time.Time       `json:"posted_at"`
}
