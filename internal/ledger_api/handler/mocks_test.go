package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/report"
	"github.com/nonprofit-fund-ledger/internal/domain/unit"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/nonprofit-fund-ledger/internal/ledger_api/service"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, entityID uuid.UUID, code, name string, balanceType ledger.BalanceType, classification ledger.Classification, unitID, fundID *uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, entityID, code, name, balanceType, classification, unitID, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, entityID uuid.UUID) ([]*account.Account, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountLedger(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]ledger.Transaction, int64, error) {
	args := m.Called(ctx, accountID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]ledger.Transaction), args.Get(1).(int64), args.Error(2)
}

var _ service.AccountService = (*MockAccountService)(nil)

type MockOrgService struct {
	mock.Mock
}

func (m *MockOrgService) CreateFund(ctx context.Context, entityID uuid.UUID, code, name string) (*fund.Fund, error) {
	args := m.Called(ctx, entityID, code, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fund.Fund), args.Error(1)
}

func (m *MockOrgService) GetFundByID(ctx context.Context, id uuid.UUID) (*fund.Fund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fund.Fund), args.Error(1)
}

func (m *MockOrgService) ListFunds(ctx context.Context, entityID uuid.UUID) ([]*fund.Fund, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fund.Fund), args.Error(1)
}

func (m *MockOrgService) CreateUnit(ctx context.Context, entityID uuid.UUID, name string) (*unit.EntityUnit, error) {
	args := m.Called(ctx, entityID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*unit.EntityUnit), args.Error(1)
}

func (m *MockOrgService) GetUnitByID(ctx context.Context, id uuid.UUID) (*unit.EntityUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*unit.EntityUnit), args.Error(1)
}

func (m *MockOrgService) ListUnits(ctx context.Context, entityID uuid.UUID) ([]*unit.EntityUnit, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*unit.EntityUnit), args.Error(1)
}

var _ service.OrgService = (*MockOrgService)(nil)

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(ctx context.Context, params service.CreateEntryParams) (*journal.Entry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) RecordFundTransfer(ctx context.Context, params service.FundTransferParams) (*journal.Entry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, id uuid.UUID, params service.UpdateEntryParams) (*journal.Entry, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) SubmitForPosting(ctx context.Context, id uuid.UUID, correlationID string) (*journal.Entry, error) {
	args := m.Called(ctx, id, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) LockEntry(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalService) UnlockEntry(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

var _ service.JournalService = (*MockJournalService)(nil)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) BuildDigest(ctx context.Context, entityID uuid.UUID, filters ledger.Filters, correlationID string) (*ledger.Digest, error) {
	args := m.Called(ctx, entityID, filters, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Digest), args.Error(1)
}

func (m *MockReportService) Summarize(ctx context.Context, entityID uuid.UUID, from, to time.Time) (ledger.Totals, error) {
	args := m.Called(ctx, entityID, from, to)
	return args.Get(0).(ledger.Totals), args.Error(1)
}

func (m *MockReportService) GetSnapshot(ctx context.Context, id uuid.UUID) (*report.DigestSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DigestSnapshot), args.Error(1)
}

func (m *MockReportService) ListSnapshots(ctx context.Context, entityID uuid.UUID, page, perPage int) ([]*report.DigestSnapshot, int64, error) {
	args := m.Called(ctx, entityID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*report.DigestSnapshot), args.Get(1).(int64), args.Error(2)
}

var _ service.ReportService = (*MockReportService)(nil)
