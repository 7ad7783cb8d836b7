package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/report"
	"github.com/nonprofit-fund-ledger/internal/domain/unit"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// TxRunner runs a function inside a database transaction. Satisfied by
// persistence.PostgresDB.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// AccountService defines the interface for chart-of-accounts operations
type AccountService interface {
	// CreateAccount creates a new account within an entity
	// Returns ErrDuplicateCode if the code is already taken in the entity
	CreateAccount(ctx context.Context, entityID uuid.UUID, code, name string, balanceType ledger.BalanceType, classification ledger.Classification, unitID, fundID *uuid.UUID) (*account.Account, error)

	// GetAccountByID retrieves an account by its ID
	// Returns ErrAccountNotFound if the account doesn't exist
	GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// ListAccounts returns all accounts of an entity ordered by code
	ListAccounts(ctx context.Context, entityID uuid.UUID) ([]*account.Account, error)

	// GetAccountLedger returns paginated materialized ledger rows for an
	// account, newest first, together with the total row count
	GetAccountLedger(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]ledger.Transaction, int64, error)
}

// OrgService defines the interface for fund and entity unit operations
type OrgService interface {
	CreateFund(ctx context.Context, entityID uuid.UUID, code, name string) (*fund.Fund, error)
	GetFundByID(ctx context.Context, id uuid.UUID) (*fund.Fund, error)
	ListFunds(ctx context.Context, entityID uuid.UUID) ([]*fund.Fund, error)

	CreateUnit(ctx context.Context, entityID uuid.UUID, name string) (*unit.EntityUnit, error)
	GetUnitByID(ctx context.Context, id uuid.UUID) (*unit.EntityUnit, error)
	ListUnits(ctx context.Context, entityID uuid.UUID) ([]*unit.EntityUnit, error)
}

// EntryLine is one debit or credit leg of a journal entry to be created
type EntryLine struct {
	AccountID   uuid.UUID
	Type        ledger.TxType
	Amount      decimal.Decimal
	Description string
	FundID      *uuid.UUID
}

// CreateEntryParams carries everything needed to create a draft journal entry
type CreateEntryParams struct {
	EntityID    uuid.UUID
	Timestamp   time.Time
	Description string
	UnitID      *uuid.UUID
	Lines       []EntryLine
}

// UpdateEntryParams carries the replacement header and transaction set of a
// draft journal entry. The entry's entity never changes.
type UpdateEntryParams struct {
	Timestamp   time.Time
	Description string
	UnitID      *uuid.UUID
	Lines       []EntryLine
}

// FundTransferParams describes an inter-fund transfer recorded as one
// balanced journal entry
type FundTransferParams struct {
	EntityID        uuid.UUID
	FromFundID      uuid.UUID
	ToFundID        uuid.UUID
	SourceAccountID uuid.UUID
	TargetAccountID uuid.UUID
	Amount          decimal.Decimal
	Timestamp       time.Time
	Description     string
}

// JournalService defines the interface for journal entry operations
type JournalService interface {
	// CreateEntry creates a draft journal entry with its transactions.
	// Every referenced account must exist, be active and belong to the
	// entry's entity.
	CreateEntry(ctx context.Context, params CreateEntryParams) (*journal.Entry, error)

	// RecordFundTransfer creates a draft entry moving an amount from one
	// fund to another
	RecordFundTransfer(ctx context.Context, params FundTransferParams) (*journal.Entry, error)

	// UpdateEntry replaces a draft (or failed) entry's header and transaction
	// set. Entries that have left the editable states are rejected with
	// ErrEntryNotDraft.
	UpdateEntry(ctx context.Context, id uuid.UUID, params UpdateEntryParams) (*journal.Entry, error)

	// GetEntryByID retrieves a journal entry with its transactions
	// Returns ErrEntryNotFound if the entry doesn't exist
	GetEntryByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error)

	// SubmitForPosting validates the double-entry invariant, transitions the
	// entry to pending and publishes a posting request for the processor.
	// Returns ledger.UnbalancedEntryError if debits and credits differ.
	SubmitForPosting(ctx context.Context, id uuid.UUID, correlationID string) (*journal.Entry, error)

	// LockEntry freezes a posted entry against modification
	LockEntry(ctx context.Context, id uuid.UUID) (*journal.Entry, error)

	// UnlockEntry releases a locked posted entry
	UnlockEntry(ctx context.Context, id uuid.UUID) (*journal.Entry, error)
}

// ReportService defines the interface for digest and summary operations
type ReportService interface {
	// BuildDigest materializes the entity's ledger rows for the filter range
	// and runs the aggregation engine over them. Successful digests are
	// archived as snapshots.
	BuildDigest(ctx context.Context, entityID uuid.UUID, filters ledger.Filters, correlationID string) (*ledger.Digest, error)

	// Summarize returns the flat debit/credit totals of the entity's rows in
	// the date range
	Summarize(ctx context.Context, entityID uuid.UUID, from, to time.Time) (ledger.Totals, error)

	// GetSnapshot retrieves an archived digest snapshot
	GetSnapshot(ctx context.Context, id uuid.UUID) (*report.DigestSnapshot, error)

	// ListSnapshots returns paginated archived snapshots for an entity,
	// newest first, together with the total count
	ListSnapshots(ctx context.Context, entityID uuid.UUID, page, perPage int) ([]*report.DigestSnapshot, int64, error)
}
