package components

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPostingManager_LockAndPost(t *testing.T) {
	logger := slog.Default()

	t.Run("posts a pending entry", func(t *testing.T) {
		mockRepo := &MockJournalRepo{}
		manager := NewPostingManager(mockRepo, logger)

		entry := balancedEntry(journal.StatusPending)
		request := shared.NewPostingRequest(entry.ID, entry.EntityID, "corr1")

		mockRepo.On("WithTx", mock.Anything).Return(mockRepo)
		mockRepo.On("LockForPosting", mock.Anything, entry.ID).Return(entry, nil).Once()
		mockRepo.On("Update", mock.Anything, entry).Return(nil).Once()

		posted, err := manager.LockAndPost(context.Background(), nil, request)

		assert.NoError(t, err)
		assert.Equal(t, journal.StatusPosted, posted.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("entry posted concurrently is returned unchanged", func(t *testing.T) {
		mockRepo := &MockJournalRepo{}
		manager := NewPostingManager(mockRepo, logger)

		entry := balancedEntry(journal.StatusPosted)
		versionBefore := entry.Version
		request := shared.NewPostingRequest(entry.ID, entry.EntityID, "corr1")

		mockRepo.On("WithTx", mock.Anything).Return(mockRepo)
		mockRepo.On("LockForPosting", mock.Anything, entry.ID).Return(entry, nil).Once()

		posted, err := manager.LockAndPost(context.Background(), nil, request)

		assert.NoError(t, err)
		assert.Equal(t, journal.StatusPosted, posted.Status)
		assert.Equal(t, versionBefore, posted.Version)
		mockRepo.AssertCalled(t, "LockForPosting", mock.Anything, entry.ID)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("entry not found", func(t *testing.T) {
		mockRepo := &MockJournalRepo{}
		manager := NewPostingManager(mockRepo, logger)

		id := uuid.New()
		request := shared.NewPostingRequest(id, uuid.New(), "corr1")

		mockRepo.On("WithTx", mock.Anything).Return(mockRepo)
		mockRepo.On("LockForPosting", mock.Anything, id).
			Return(nil, journal.ErrEntryNotFound{JournalEntryID: id}).Once()

		posted, err := manager.LockAndPost(context.Background(), nil, request)

		assert.Nil(t, posted)
		assert.ErrorIs(t, err, journal.ErrEntryNotFound{})
		mockRepo.AssertExpectations(t)
	})

	t.Run("unbalanced entry is rejected under the lock", func(t *testing.T) {
		mockRepo := &MockJournalRepo{}
		manager := NewPostingManager(mockRepo, logger)

		entry := journal.NewEntry(uuid.New(), time.Now(), "skewed", nil)
		_ = entry.AddTransaction(uuid.New(), ledger.TxTypeDebit, decimal.NewFromInt(100), "", nil)
		_ = entry.AddTransaction(uuid.New(), ledger.TxTypeCredit, decimal.NewFromInt(90), "", nil)
		entry.Status = journal.StatusPending
		request := shared.NewPostingRequest(entry.ID, entry.EntityID, "corr1")

		mockRepo.On("WithTx", mock.Anything).Return(mockRepo)
		mockRepo.On("LockForPosting", mock.Anything, entry.ID).Return(entry, nil).Once()

		posted, err := manager.LockAndPost(context.Background(), nil, request)

		assert.Nil(t, posted)
		var unbalanced ledger.UnbalancedEntryError
		assert.ErrorAs(t, err, &unbalanced)
		assert.Equal(t, entry.ID, unbalanced.JournalEntryID)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("update failure propagates", func(t *testing.T) {
		mockRepo := &MockJournalRepo{}
		manager := NewPostingManager(mockRepo, logger)

		entry := balancedEntry(journal.StatusPending)
		request := shared.NewPostingRequest(entry.ID, entry.EntityID, "corr1")

		mockRepo.On("WithTx", mock.Anything).Return(mockRepo)
		mockRepo.On("LockForPosting", mock.Anything, entry.ID).Return(entry, nil).Once()
		mockRepo.On("Update", mock.Anything, entry).Return(errors.New("db error")).Once()

		posted, err := manager.LockAndPost(context.Background(), nil, request)

		assert.Nil(t, posted)
		assert.ErrorContains(t, err, "db error")
		mockRepo.AssertExpectations(t)
	})
}
