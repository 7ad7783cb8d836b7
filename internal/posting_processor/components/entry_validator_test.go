package components

import (
	"context"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockJournalRepo for testing
type MockJournalRepo struct {
	mock.Mock
}

func (m *MockJournalRepo) Create(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepo) GetByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalRepo) Update(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepo) ReplaceTransactions(ctx context.Context, entry *journal.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepo) LockForPosting(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Entry), args.Error(1)
}

func (m *MockJournalRepo) ListRows(ctx context.Context, entityID uuid.UUID, from, to time.Time) ([]ledger.Transaction, error) {
	args := m.Called(ctx, entityID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockJournalRepo) ListRowsByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]ledger.Transaction, int64, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]ledger.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalRepo) WithTx(tx pgx.Tx) journal.Repository {
	args := m.Called(tx)
	return args.Get(0).(journal.Repository)
}

// balancedEntry builds an entry in the given status with one balanced
// debit/credit pair.
func balancedEntry(status journal.Status) *journal.Entry {
	entry := journal.NewEntry(uuid.New(), time.Now(), "grant disbursement", nil)
	_ = entry.AddTransaction(uuid.New(), ledger.TxTypeDebit, decimal.NewFromInt(50), "", nil)
	_ = entry.AddTransaction(uuid.New(), ledger.TxTypeCredit, decimal.NewFromInt(50), "", nil)
	entry.Status = status
	return entry
}

func TestEntryValidator_Validate(t *testing.T) {
	logger := slog.Default()

	lockedEntry := balancedEntry(journal.StatusPosted)
	lockedEntry.Locked = true

	emptyEntry := journal.NewEntry(uuid.New(), time.Now(), "empty", nil)
	emptyEntry.Status = journal.StatusPending

	draftEntry := balancedEntry(journal.StatusDraft)

	tests := []struct {
		name       string
		setupMock  func(mockRepo *MockJournalRepo, id uuid.UUID)
		wantErr    error
		wantAnyErr bool
	}{
		{
			name: "pending entry is valid",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(balancedEntry(journal.StatusPending), nil).Once()
			},
		},
		{
			name: "posted entry is valid for idempotent redelivery",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(balancedEntry(journal.StatusPosted), nil).Once()
			},
		},
		{
			name: "entry not found",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(nil, journal.ErrEntryNotFound{JournalEntryID: id}).Once()
			},
			wantAnyErr: true,
		},
		{
			name: "locked entry",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(lockedEntry, nil).Once()
			},
			wantErr: journal.ErrEntryLocked,
		},
		{
			name: "entry without transactions",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(emptyEntry, nil).Once()
			},
			wantErr: journal.ErrNoTransactions,
		},
		{
			name: "draft entry not submitted for posting",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(draftEntry, nil).Once()
			},
			wantErr: journal.ErrEntryNotPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockJournalRepo{}
			validator := NewEntryValidator(mockRepo, logger)

			id := uuid.New()
			tt.setupMock(mockRepo, id)

			request := shared.NewPostingRequest(id, uuid.New(), "corr1")
			err := validator.Validate(context.Background(), request)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantAnyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestEntryValidator_CheckIdempotency(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name      string
		setupMock func(mockRepo *MockJournalRepo, id uuid.UUID)
		wantSkip  bool
		wantErr   bool
	}{
		{
			name: "entry already posted",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(balancedEntry(journal.StatusPosted), nil).Once()
			},
			wantSkip: true,
		},
		{
			name: "entry still pending",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(balancedEntry(journal.StatusPending), nil).Once()
			},
			wantSkip: false,
		},
		{
			name: "repository error",
			setupMock: func(mockRepo *MockJournalRepo, id uuid.UUID) {
				mockRepo.On("GetByID", mock.Anything, id).Return(nil, journal.ErrEntryNotFound{JournalEntryID: id}).Once()
			},
			wantSkip: false,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockJournalRepo{}
			validator := NewEntryValidator(mockRepo, logger)

			id := uuid.New()
			tt.setupMock(mockRepo, id)

			request := shared.NewPostingRequest(id, uuid.New(), "corr1")
			skip, err := validator.CheckIdempotency(context.Background(), request)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantSkip, skip)
			mockRepo.AssertExpectations(t)
		})
	}
}
