package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/ledger"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
	journalRepo journal.Repository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository, journalRepo journal.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// CreateAccount creates a new account, rejecting duplicate codes within the entity
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, entityID uuid.UUID, code, name string, balanceType ledger.BalanceType, classification ledger.Classification, unitID, fundID *uuid.UUID) (*account.Account, error) {
	acc, err := account.NewAccount(entityID, code, name, balanceType, classification, unitID, fundID)
	if err != nil {
		return nil, err
	}

	// The repository maps the unique constraint to ErrDuplicateCode, so no
	// read-before-write is needed here.
	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// GetAccountByID retrieves an account by its ID, returns ErrAccountNotFound if not found
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// ListAccounts returns all accounts of an entity ordered by code
func (s *AccountServiceImpl) ListAccounts(ctx context.Context, entityID uuid.UUID) ([]*account.Account, error) {
	return s.accountRepo.ListByEntity(ctx, entityID)
}

// GetAccountLedger returns paginated ledger rows for an account, newest first
func (s *AccountServiceImpl) GetAccountLedger(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]ledger.Transaction, int64, error) {
	// Confirm the account exists so a missing account surfaces as 404
	// rather than an empty page.
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	return s.journalRepo.ListRowsByAccount(ctx, accountID, perPage, offset)
}
