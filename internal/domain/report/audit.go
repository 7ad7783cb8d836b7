package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
)

// PostedEntryRecord is the immutable audit document written when a journal
// entry is posted. It mirrors the published EntryPostedEvent with amounts as
// fixed-point strings.
type PostedEntryRecord struct {
	JournalEntryID uuid.UUID  `bson:"journal_entry_id" json:"journal_entry_id"`
	EntityID       uuid.UUID  `bson:"entity_id" json:"entity_id"`
	UnitID         *uuid.UUID `bson:"unit_id,omitempty" json:"unit_id,omitempty"`
	Timestamp      time.Time  `bson:"timestamp" json:"timestamp"`
	Description    string     `bson:"description,omitempty" json:"description,omitempty"`
	TotalDebits    string     `bson:"total_debits" json:"total_debits"`
	TotalCredits   string     `bson:"total_credits" json:"total_credits"`
	CorrelationID  string     `bson:"correlation_id" json:"correlation_id"`
	PostedAt       time.Time  `bson:"posted_at" json:"posted_at"`
	RecordedAt     time.Time  `bson:"recorded_at" json:"recorded_at"`
}

// NewPostedEntryRecord converts a published event into its audit document.
func NewPostedEntryRecord(event *shared.EntryPostedEvent) *PostedEntryRecord {
	return &PostedEntryRecord{
		JournalEntryID: event.JournalEntryID,
		EntityID:       event.EntityID,
		UnitID:         event.UnitID,
		Timestamp:      event.Timestamp,
		Description:    event.Description,
		TotalDebits:    event.TotalDebits.String(),
		TotalCredits:   event.TotalCredits.String(),
		CorrelationID:  event.CorrelationID,
		PostedAt:       event.PostedAt,
		RecordedAt:     time.Now(),
	}
}
