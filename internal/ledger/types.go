// Package ledger implements the income statement aggregation engine.
// It operates on already-materialized transaction rows and has no storage
// or transport dependencies: a digest is a pure function of its inputs.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxType is the signed role of a single transaction.
type TxType string

const (
	TxTypeDebit  TxType = "debit"
	TxTypeCredit TxType = "credit"
)

// Valid reports whether t is one of the two known transaction types.
func (t TxType) Valid() bool {
	return t == TxTypeDebit || t == TxTypeCredit
}

// BalanceType is the natural increasing direction of an account. It is fixed
// when the account is created and never flips.
type BalanceType string

const (
	BalanceTypeDebit  BalanceType = "debit"
	BalanceTypeCredit BalanceType = "credit"
)

// Valid reports whether b is one of the two known balance types.
func (b BalanceType) Valid() bool {
	return b == BalanceTypeDebit || b == BalanceTypeCredit
}

// Classification is the static income statement category of an account,
// assigned at chart-of-accounts design time. It is never inferred from
// transaction content or account naming.
type Classification string

const (
	ClassOperatingRevenue Classification = "operating_revenue"
	ClassOperatingCOGS    Classification = "operating_cogs"
	ClassOperatingExpense Classification = "operating_expense"
	ClassOtherRevenue     Classification = "other_revenue"
	ClassOtherExpense     Classification = "other_expense"

	// ClassNone marks balance sheet accounts (cash, payables, ...) that
	// never appear on the income statement.
	ClassNone Classification = "none"
)

// Valid reports whether c is a known classification.
func (c Classification) Valid() bool {
	switch c {
	case ClassOperatingRevenue, ClassOperatingCOGS, ClassOperatingExpense,
		ClassOtherRevenue, ClassOtherExpense, ClassNone:
		return true
	}
	return false
}

// Transaction is one materialized ledger row: a transaction joined with its
// journal entry and account attributes. The caller (typically the journal
// repository) produces these; the engine never reaches back into storage.
type Transaction struct {
	JournalEntryID uuid.UUID
	EntryPosted    bool
	Date           time.Time
	AccountID      uuid.UUID
	AccountCode    string
	AccountName    string
	BalanceType    BalanceType
	Classification Classification
	TxType         TxType
	Amount         decimal.Decimal
	UnitID         uuid.UUID // uuid.Nil when the entry has no entity unit
	UnitName       string
	FundID         uuid.UUID // uuid.Nil when the transaction has no fund
}

// Filters scopes a digest build. UnitID and FundID are optional (uuid.Nil
// means no filter). ByUnit additionally segments the digest per entity unit.
type Filters struct {
	FromDate time.Time
	ToDate   time.Time
	UnitID   uuid.UUID
	FundID   uuid.UUID
	ByUnit   bool
}

// AccountBalance is one row of an income statement category. Balance carries
// the account's natural sign: a revenue account with credit activity shows a
// positive balance, as does a COGS or expense account with debit activity.
type AccountBalance struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	UnitID      uuid.UUID       `json:"unit_id,omitempty"`
	UnitName    string          `json:"unit_name,omitempty"`
	BalanceType BalanceType     `json:"balance_type"`
	Balance     decimal.Decimal `json:"balance"`
}

// OperatingStatement holds the operating section of the income statement.
// COGS and Expenses rows (and NetCOGS / NetOperatingExpenses) are positive
// magnitudes that consumers display sign-reversed; the subtraction already
// happened in GrossProfit and NetOperatingIncome.
type OperatingStatement struct {
	Revenues []AccountBalance `json:"revenues"`
	COGS     []AccountBalance `json:"cogs"`
	Expenses []AccountBalance `json:"expenses"`

	NetOperatingRevenue  decimal.Decimal `json:"net_operating_revenue"`
	NetCOGS              decimal.Decimal `json:"net_cogs"`
	GrossProfit          decimal.Decimal `json:"gross_profit"`
	NetOperatingExpenses decimal.Decimal `json:"net_operating_expenses"`
	NetOperatingIncome   decimal.Decimal `json:"net_operating_income"`
}

// OtherStatement holds the non-operating section. Expense rows and
// NetOtherExpenses follow the same display sign-reversal convention as the
// operating section.
type OtherStatement struct {
	Revenues []AccountBalance `json:"revenues"`
	Expenses []AccountBalance `json:"expenses"`

	NetOtherRevenues decimal.Decimal `json:"net_other_revenues"`
	NetOtherExpenses decimal.Decimal `json:"net_other_expenses"`
	NetOtherIncome   decimal.Decimal `json:"net_other_income"`
}

// IncomeStatement is a fully rolled-up statement for one scope (the whole
// entity or a single unit segment).
type IncomeStatement struct {
	Operating OperatingStatement `json:"operating"`
	Other     OtherStatement     `json:"other"`
	NetIncome decimal.Decimal    `json:"net_income"`
}

// UnitSegment is one per-unit statement produced in by-unit mode. A nil
// UnitID groups transactions whose journal entries carry no entity unit.
type UnitSegment struct {
	UnitID          uuid.UUID       `json:"unit_id,omitempty"`
	UnitName        string          `json:"unit_name,omitempty"`
	IncomeStatement IncomeStatement `json:"income_statement"`
}

// Digest is the read-only categorized balance report for a date range. It is
// built once per request and never mutated afterwards.
type Digest struct {
	ByUnit   bool      `json:"by_unit"`
	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`

	// IncomeStatement is the consolidated statement; it is always present,
	// including in by-unit mode.
	IncomeStatement IncomeStatement `json:"income_statement"`

	// Units is populated only when ByUnit is set, ordered by unit name with
	// the unassigned segment last.
	Units []UnitSegment `json:"units,omitempty"`
}

// Totals is the flat debit/credit summary of a transaction list.
type Totals struct {
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
}
