package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
)

// Message stores a posted-entry event for reliable publishing. It is written
// in the same database transaction that marks the journal entry posted.
type Message struct {
	ID             int64               `json:"id"`
	JournalEntryID uuid.UUID           `json:"journal_entry_id"`
	EntityID       uuid.UUID           `json:"entity_id"`
	Payload        json.RawMessage     `json:"payload"`
	Status         shared.OutboxStatus `json:"status"`
	Attempts       int                 `json:"attempts"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAttemptAt  *time.Time          `json:"last_attempt_at,omitempty"`
}

// NewMessage wraps an EntryPostedEvent as a pending outbox message.
func NewMessage(event *shared.EntryPostedEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		JournalEntryID: event.JournalEntryID,
		EntityID:       event.EntityID,
		Payload:        payload,
		Status:         shared.OutboxStatusPending,
		Attempts:       0,
		CreatedAt:      time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsProcessed() {
	m.Status = shared.OutboxStatusProcessed
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// GetEvent extracts the posted-entry event from the payload
func (m *Message) GetEvent() (*shared.EntryPostedEvent, error) {
	var event shared.EntryPostedEvent
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
