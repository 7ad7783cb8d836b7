package ledger

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidDateRange indicates a report interval whose from date falls
// after its to date.
var ErrInvalidDateRange = errors.New("invalid date range: from_date is after to_date")

// UnbalancedEntryError indicates a posted journal entry whose debit and
// credit totals disagree. Posting validation should make this unreachable;
// the digest builder surfaces it instead of producing a skewed net income.
type UnbalancedEntryError struct {
	JournalEntryID uuid.UUID
	Debits         decimal.Decimal
	Credits        decimal.Decimal
}

func (e UnbalancedEntryError) Error() string {
	return "unbalanced journal entry " + e.JournalEntryID.String() +
		": debits " + e.Debits.String() + " != credits " + e.Credits.String()
}

// Is matches any UnbalancedEntryError when the target carries a nil entry ID
func (e UnbalancedEntryError) Is(target error) bool {
	t, ok := target.(UnbalancedEntryError)
	if !ok {
		return false
	}
	if t.JournalEntryID == uuid.Nil {
		return true
	}
	return e.JournalEntryID == t.JournalEntryID
}
