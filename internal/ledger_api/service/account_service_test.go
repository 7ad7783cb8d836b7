package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAccountServiceImpl_CreateAccount(t *testing.T) {
	ctx := context.Background()
	entityID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockJournalRepo := new(MockJournalRepository)
		service := NewAccountService(mockAccountRepo, mockJournalRepo)

		mockAccountRepo.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(nil).Once()

		acc, err := service.CreateAccount(ctx, entityID, "4000", "Donations", ledger.BalanceTypeCredit, ledger.ClassOperatingRevenue, nil, nil)

		assert.NoError(t, err)
		assert.NotNil(t, acc)
		assert.Equal(t, entityID, acc.EntityID)
		assert.Equal(t, "4000", acc.Code)
		assert.Equal(t, ledger.BalanceTypeCredit, acc.BalanceType)
		assert.Equal(t, ledger.ClassOperatingRevenue, acc.Classification)
		assert.True(t, acc.Active)
		assert.NotEqual(t, uuid.Nil, acc.ID)
		mockAccountRepo.AssertExpectations(t)
	})

	t.Run("InvalidAccountData", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockJournalRepo := new(MockJournalRepository)
		service := NewAccountService(mockAccountRepo, mockJournalRepo)

		_, err := service.CreateAccount(ctx, entityID, "", "Donations", ledger.BalanceTypeCredit, ledger.ClassOperatingRevenue, nil, nil)

		assert.Error(t, err)
		mockAccountRepo.AssertNotCalled(t, "Create", ctx, mock.AnythingOfType("*account.Account"))
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockJournalRepo := new(MockJournalRepository)
		service := NewAccountService(mockAccountRepo, mockJournalRepo)
		duplicateErr := account.ErrDuplicateCode{EntityID: entityID, Code: "4000"}

		mockAccountRepo.On("Create", ctx, mock.AnythingOfType("*account.Account")).Return(duplicateErr).Once()

		acc, err := service.CreateAccount(ctx, entityID, "4000", "Donations", ledger.BalanceTypeCredit, ledger.ClassOperatingRevenue, nil, nil)

		assert.Error(t, err)
		assert.Nil(t, acc)
		var dupErr account.ErrDuplicateCode
		assert.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "4000", dupErr.Code)
		mockAccountRepo.AssertExpectations(t)
	})
}

func TestAccountServiceImpl_GetAccountByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockJournalRepo := new(MockJournalRepository)
		service := NewAccountService(mockAccountRepo, mockJournalRepo)
		accountID := uuid.New()
		expected := &account.Account{ID: accountID, Code: "5000", Name: "Program Supplies"}

		mockAccountRepo.On("GetByID", ctx, accountID).Return(expected, nil).Once()

		acc, err := service.GetAccountByID(ctx, accountID)

		assert.NoError(t, err)
		assert.Equal(t, expected, acc)
		mockAccountRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockJournalRepo := new(MockJournalRepository)
		service := NewAccountService(mockAccountRepo, mockJournalRepo)
		accountID := uuid.New()

		mockAccountRepo.On("GetByID", ctx, accountID).Return(nil, account.ErrAccountNotFound{AccountID: accountID}).Once()

		acc, err := service.GetAccountByID(ctx, accountID)

		assert.Error(t, err)
		assert.Nil(t, acc)
		assert.True(t, errors.Is(err, account.ErrAccountNotFound{}))
		mockAccountRepo.AssertExpectations(t)
	})
}

func TestAccountServiceImpl_ListAccounts(t *testing.T) {
	ctx := context.Background()
	entityID := uuid.New()

	mockAccountRepo := new(MockAccountRepository)
	mockJournalRepo := new(MockJournalRepository)
	service := NewAccountService(mockAccountRepo, mockJournalRepo)
	expected := []*account.Account{
		{ID: uuid.New(), EntityID: entityID, Code: "4000"},
		{ID: uuid.New(), EntityID: entityID, Code: "5000"},
	}

	mockAccountRepo.On("ListByEntity", ctx, entityID).Return(expected, nil).Once()

	accounts, err := service.ListAccounts(ctx, entityID)

	assert.NoError(t, err)
	assert.Equal(t, expected, accounts)
	mockAccountRepo.AssertExpectations(t)
}

func TestAccountServiceImpl_GetAccountLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockJournalRepo := new(MockJournalRepository)
		service := NewAccountService(mockAccountRepo, mockJournalRepo)
		accountID := uuid.New()
		rows := []ledger.Transaction{
			{AccountID: accountID, AccountCode: "4000", TxType: ledger.TxTypeCredit},
		}

		mockAccountRepo.On("GetByID", ctx, accountID).Return(&account.Account{ID: accountID}, nil).Once()
		mockJournalRepo.On("ListRowsByAccount", ctx, accountID, 10, 10).Return(rows, int64(11), nil).Once()

		got, total, err := service.GetAccountLedger(ctx, accountID, 2, 10)

		assert.NoError(t, err)
		assert.Equal(t, rows, got)
		assert.Equal(t, int64(11), total)
		mockAccountRepo.AssertExpectations(t)
		mockJournalRepo.AssertExpectations(t)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		mockAccountRepo := new(MockAccountRepository)
		mockJournalRepo := new(MockJournalRepository)
		service := NewAccountService(mockAccountRepo, mockJournalRepo)
		accountID := uuid.New()

		mockAccountRepo.On("GetByID", ctx, accountID).Return(nil, account.ErrAccountNotFound{AccountID: accountID}).Once()

		_, _, err := service.GetAccountLedger(ctx, accountID, 1, 10)

		assert.True(t, errors.Is(err, account.ErrAccountNotFound{}))
		mockJournalRepo.AssertNotCalled(t, "ListRowsByAccount", ctx, accountID, 10, 0)
	})
}
