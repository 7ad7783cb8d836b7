package journal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrInvalidAmount   = errors.New("transaction amount must be positive")
	ErrInvalidTxType   = errors.New("transaction type must be debit or credit")
	ErrNoTransactions  = errors.New("journal entry has no transactions")
	ErrEntryLocked     = errors.New("journal entry is locked")
	ErrEntryNotDraft   = errors.New("journal entry is not in draft state")
	ErrEntryNotPending = errors.New("journal entry is not pending posting")
	ErrEntryNotPosted  = errors.New("journal entry is not posted")
	ErrEntryNotLocked  = errors.New("journal entry is not locked")
)

// Status defines the posting lifecycle of a journal entry. draft, pending
// and failed are all "unposted" in accounting terms: their transactions do
// not count toward any balance.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPosted  Status = "posted"
	StatusFailed  Status = "failed"
)

// Transaction is one debit or credit leg of a journal entry.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	AccountID      uuid.UUID       `json:"account_id"`
	TxType         ledger.TxType   `json:"tx_type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description,omitempty"`
	FundID         *uuid.UUID      `json:"fund_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Entry is an ordered, atomic group of transactions. The double-entry
// invariant (sum of debits == sum of credits) must hold before the entry can
// be posted; a posted and locked entry is immutable.
type Entry struct {
	ID            uuid.UUID     `json:"id"`
	EntityID      uuid.UUID     `json:"entity_id"`
	Timestamp     time.Time     `json:"timestamp"`
	Description   string        `json:"description,omitempty"`
	UnitID        *uuid.UUID    `json:"unit_id,omitempty"`
	Status        Status        `json:"status"`
	Locked        bool          `json:"locked"`
	FailureReason string        `json:"failure_reason,omitempty"`
	Version       int           `json:"version"` // For optimistic locking
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Transactions  []Transaction `json:"transactions"`
}

// NewEntry creates a draft journal entry with no transactions.
func NewEntry(entityID uuid.UUID, timestamp time.Time, description string, unitID *uuid.UUID) *Entry {
	now := time.Now()
	return &Entry{
		ID:          uuid.New(),
		EntityID:    entityID,
		Timestamp:   timestamp,
		Description: description,
		UnitID:      unitID,
		Status:      StatusDraft,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddTransaction appends a debit or credit leg to a draft entry.
func (e *Entry) AddTransaction(accountID uuid.UUID, txType ledger.TxType, amount decimal.Decimal, description string, fundID *uuid.UUID) error {
	if e.Status != StatusDraft && e.Status != StatusFailed {
		return ErrEntryNotDraft
	}
	if e.Locked {
		return ErrEntryLocked
	}
	if !txType.Valid() {
		return ErrInvalidTxType
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	e.Transactions = append(e.Transactions, Transaction{
		ID:             uuid.New(),
		JournalEntryID: e.ID,
		AccountID:      accountID,
		TxType:         txType,
		Amount:         amount,
		Description:    description,
		FundID:         fundID,
		CreatedAt:      time.Now(),
	})
	e.touch()
	return nil
}

// Revise rewrites an editable entry's header and clears its transactions so
// a replacement set can be added. A failed entry returns to draft and its
// failure reason is cleared.
func (e *Entry) Revise(timestamp time.Time, description string, unitID *uuid.UUID) error {
	if e.Status != StatusDraft && e.Status != StatusFailed {
		return ErrEntryNotDraft
	}
	if e.Locked {
		return ErrEntryLocked
	}
	e.Timestamp = timestamp
	e.Description = description
	e.UnitID = unitID
	e.Status = StatusDraft
	e.FailureReason = ""
	e.Transactions = nil
	e.bump()
	return nil
}

// Totals returns the entry's debit and credit sums.
func (e *Entry) Totals() (debits, credits decimal.Decimal) {
	for _, tx := range e.Transactions {
		if tx.TxType == ledger.TxTypeDebit {
			debits = debits.Add(tx.Amount)
		} else {
			credits = credits.Add(tx.Amount)
		}
	}
	return debits, credits
}

// IsBalanced reports whether the double-entry invariant holds.
func (e *Entry) IsBalanced() bool {
	debits, credits := e.Totals()
	return debits.Equal(credits)
}

// SubmitForPosting transitions a balanced draft (or previously failed) entry
// to pending so the posting processor can pick it up.
func (e *Entry) SubmitForPosting() error {
	if e.Status != StatusDraft && e.Status != StatusFailed {
		return ErrEntryNotDraft
	}
	if len(e.Transactions) == 0 {
		return ErrNoTransactions
	}
	if !e.IsBalanced() {
		debits, credits := e.Totals()
		return ledger.UnbalancedEntryError{JournalEntryID: e.ID, Debits: debits, Credits: credits}
	}
	e.Status = StatusPending
	e.FailureReason = ""
	e.bump()
	return nil
}

// MarkPosted finalizes a pending entry. The balance invariant is re-checked
// here: posting an unbalanced entry must be impossible no matter what
// happened to the draft in between.
func (e *Entry) MarkPosted() error {
	if e.Status != StatusPending {
		return ErrEntryNotPending
	}
	if !e.IsBalanced() {
		debits, credits := e.Totals()
		return ledger.UnbalancedEntryError{JournalEntryID: e.ID, Debits: debits, Credits: credits}
	}
	e.Status = StatusPosted
	e.FailureReason = ""
	e.bump()
	return nil
}

// MarkFailed records a posting rejection and returns the entry to an
// editable state.
func (e *Entry) MarkFailed(reason string) error {
	if e.Status != StatusPending {
		return ErrEntryNotPending
	}
	e.Status = StatusFailed
	e.FailureReason = reason
	e.bump()
	return nil
}

// Lock freezes a posted entry. Locked entries and their transactions are
// immutable until unlocked.
func (e *Entry) Lock() error {
	if e.Status != StatusPosted {
		return ErrEntryNotPosted
	}
	if e.Locked {
		return ErrEntryLocked
	}
	e.Locked = true
	e.bump()
	return nil
}

// Unlock releases a locked posted entry.
func (e *Entry) Unlock() error {
	if e.Status != StatusPosted {
		return ErrEntryNotPosted
	}
	if !e.Locked {
		return ErrEntryNotLocked
	}
	e.Locked = false
	e.bump()
	return nil
}

func (e *Entry) touch() {
	e.UpdatedAt = time.Now()
}

func (e *Entry) bump() {
	e.Version++
	e.touch()
}
