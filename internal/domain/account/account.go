package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/ledger"
)

// Common errors
var (
	ErrEmptyCode             = errors.New("account code cannot be empty")
	ErrEmptyName             = errors.New("account name cannot be empty")
	ErrInvalidBalanceType    = errors.New("balance type must be debit or credit")
	ErrInvalidClassification = errors.New("unknown account classification")
)

// Account is one chart-of-accounts account. BalanceType and Classification
// are fixed at creation: the balance type never flips, and the income
// statement category is chart-of-accounts configuration, never derived from
// transaction content.
type Account struct {
	ID             uuid.UUID             `json:"id"`
	EntityID       uuid.UUID             `json:"entity_id"`
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	BalanceType    ledger.BalanceType    `json:"balance_type"`
	Classification ledger.Classification `json:"classification"`
	UnitID         *uuid.UUID            `json:"unit_id,omitempty"`
	FundID         *uuid.UUID            `json:"fund_id,omitempty"`
	Active         bool                  `json:"active"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// NewAccount creates a new account with the given parameters. An empty
// classification defaults to ClassNone (balance sheet account).
func NewAccount(entityID uuid.UUID, code, name string, balanceType ledger.BalanceType, classification ledger.Classification, unitID, fundID *uuid.UUID) (*Account, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if !balanceType.Valid() {
		return nil, ErrInvalidBalanceType
	}
	if classification == "" {
		classification = ledger.ClassNone
	}
	if !classification.Valid() {
		return nil, ErrInvalidClassification
	}

	now := time.Now()
	return &Account{
		ID:             uuid.New(),
		EntityID:       entityID,
		Code:           code,
		Name:           name,
		BalanceType:    balanceType,
		Classification: classification,
		UnitID:         unitID,
		FundID:         fundID,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// OnIncomeStatement reports whether the account's classification places it
// on the income statement.
func (a *Account) OnIncomeStatement() bool {
	return a.Classification != ledger.ClassNone
}
