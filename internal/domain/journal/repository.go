package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/ledger"
)

// Repository manages journal entry persistence. Entries are always loaded
// and stored together with their transactions.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// Update persists the entry header (status, locked flag, failure reason)
	// using optimistic locking on Version. Transactions are immutable once
	// created; drafts replace their transaction set via ReplaceTransactions.
	Update(ctx context.Context, entry *Entry) error
	ReplaceTransactions(ctx context.Context, entry *Entry) error

	// LockForPosting acquires a row lock on the entry for the duration of a
	// posting transaction.
	LockForPosting(ctx context.Context, id uuid.UUID) (*Entry, error)

	// ListRows materializes posted-and-pending ledger rows (transaction +
	// entry + account attributes) for an entity and date interval, the input
	// shape the aggregation engine consumes.
	ListRows(ctx context.Context, entityID uuid.UUID, from, to time.Time) ([]ledger.Transaction, error)

	// ListRowsByAccount returns paginated ledger rows for one account,
	// newest first, together with the total row count.
	ListRowsByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]ledger.Transaction, int64, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrEntryNotFound indicates missing journal entry
type ErrEntryNotFound struct {
	JournalEntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "journal entry not found: " + e.JournalEntryID.String()
}

// Is implements the errors.Is interface; a target with a nil entry ID
// matches any ErrEntryNotFound.
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.JournalEntryID == uuid.Nil {
		return true
	}
	return e.JournalEntryID == t.JournalEntryID
}

// ErrConcurrentModification indicates optimistic lock failure
type ErrConcurrentModification struct {
	JournalEntryID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for journal entry: " + e.JournalEntryID.String()
}
