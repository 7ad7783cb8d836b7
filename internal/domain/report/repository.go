package report

import (
	"context"

	"github.com/google/uuid"
)

// ArchiveRepository stores digest snapshots for later retrieval
type ArchiveRepository interface {
	Archive(ctx context.Context, snapshot *DigestSnapshot) error
	GetByID(ctx context.Context, id uuid.UUID) (*DigestSnapshot, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID, limit, offset int) ([]*DigestSnapshot, error)
	CountByEntity(ctx context.Context, entityID uuid.UUID) (int64, error)
}

// AuditRepository stores the posted-entry audit trail
type AuditRepository interface {
	Record(ctx context.Context, record *PostedEntryRecord) error
	GetByJournalEntryID(ctx context.Context, journalEntryID uuid.UUID) (*PostedEntryRecord, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID, limit, offset int) ([]*PostedEntryRecord, error)
}

// ErrSnapshotNotFound indicates missing digest snapshot
type ErrSnapshotNotFound struct {
	SnapshotID uuid.UUID
}

func (e ErrSnapshotNotFound) Error() string {
	return "digest snapshot not found: " + e.SnapshotID.String()
}

// Is implements the errors.Is interface; a target with a nil snapshot ID
// matches any ErrSnapshotNotFound.
func (e ErrSnapshotNotFound) Is(target error) bool {
	t, ok := target.(ErrSnapshotNotFound)
	if !ok {
		return false
	}
	if t.SnapshotID == uuid.Nil {
		return true
	}
	return e.SnapshotID == t.SnapshotID
}

// ErrRecordNotFound indicates missing audit record
type ErrRecordNotFound struct {
	JournalEntryID uuid.UUID
}

func (e ErrRecordNotFound) Error() string {
	return "posted entry record not found: " + e.JournalEntryID.String()
}

// Is implements the errors.Is interface; a target with a nil entry ID matches
// any ErrRecordNotFound.
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	if t.JournalEntryID == uuid.Nil {
		return true
	}
	return e.JournalEntryID == t.JournalEntryID
}

// ErrDuplicateRecord indicates an audit record already exists for the entry
type ErrDuplicateRecord struct {
	JournalEntryID uuid.UUID
}

func (e ErrDuplicateRecord) Error() string {
	return "posted entry record already exists: " + e.JournalEntryID.String()
}

// Is implements the errors.Is interface; a target with a nil entry ID matches
// any ErrDuplicateRecord.
func (e ErrDuplicateRecord) Is(target error) bool {
	t, ok := target.(ErrDuplicateRecord)
	if !ok {
		return false
	}
	if t.JournalEntryID == uuid.Nil {
		return true
	}
	return e.JournalEntryID == t.JournalEntryID
}
