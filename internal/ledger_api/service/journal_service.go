package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/nonprofit-fund-ledger/internal/platform/messaging/producers"
)

// Validation errors surfaced while assembling journal entries
var (
	ErrAccountInactive = errors.New("account is inactive")
	ErrEntityMismatch  = errors.New("account belongs to a different entity")
	ErrSameFund        = errors.New("fund transfer requires two distinct funds")
)

// JournalServiceImpl implements the JournalService interface
type JournalServiceImpl struct {
	journalRepo journal.Repository
	accountRepo account.Repository
	fundRepo    fund.Repository
	txRunner    TxRunner
	producer    producers.MessagePublisher
	logger      *slog.Logger
}

// NewJournalService creates a new journal entry service
func NewJournalService(
	journalRepo journal.Repository,
	accountRepo account.Repository,
	fundRepo fund.Repository,
	txRunner TxRunner,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) JournalService {
	return &JournalServiceImpl{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		fundRepo:    fundRepo,
		txRunner:    txRunner,
		producer:    producer,
		logger:      logger,
	}
}

// CreateEntry creates a draft journal entry with its transactions. Every
// referenced account must exist, be active and belong to the entry's entity.
func (s *JournalServiceImpl) CreateEntry(ctx context.Context, params CreateEntryParams) (*journal.Entry, error) {
	entry := journal.NewEntry(params.EntityID, params.Timestamp, params.Description, params.UnitID)

	for _, line := range params.Lines {
		if err := s.checkAccount(ctx, line.AccountID, params.EntityID); err != nil {
			return nil, err
		}
		if err := entry.AddTransaction(line.AccountID, line.Type, line.Amount, line.Description, line.FundID); err != nil {
			return nil, err
		}
	}

	// The entry header and its transactions land in one database
	// transaction; a draft is never visible half-written.
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		return s.journalRepo.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		s.logger.Error("failed to create journal entry",
			"journal_entry_id", entry.ID,
			"entity_id", params.EntityID,
			"error", err)
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	s.logger.Info("journal entry created",
		"journal_entry_id", entry.ID,
		"entity_id", params.EntityID,
		"transactions", len(entry.Transactions))
	return entry, nil
}

// UpdateEntry replaces a draft (or failed) entry's header and transaction
// set. The replacement lines go through the same account checks as entry
// creation.
func (s *JournalServiceImpl) UpdateEntry(ctx context.Context, id uuid.UUID, params UpdateEntryParams) (*journal.Entry, error) {
	entry, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := entry.Revise(params.Timestamp, params.Description, params.UnitID); err != nil {
		return nil, err
	}
	for _, line := range params.Lines {
		if err := s.checkAccount(ctx, line.AccountID, entry.EntityID); err != nil {
			return nil, err
		}
		if err := entry.AddTransaction(line.AccountID, line.Type, line.Amount, line.Description, line.FundID); err != nil {
			return nil, err
		}
	}

	// Header update and transaction swap land atomically; a concurrent
	// submit bumps the version and fails the header update instead.
	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		repo := s.journalRepo.WithTx(tx)
		if err := repo.Update(ctx, entry); err != nil {
			return err
		}
		return repo.ReplaceTransactions(ctx, entry)
	})
	if err != nil {
		s.logger.Error("failed to update journal entry",
			"journal_entry_id", entry.ID,
			"error", err)
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	s.logger.Info("journal entry updated",
		"journal_entry_id", entry.ID,
		"transactions", len(entry.Transactions))
	return entry, nil
}

// RecordFundTransfer records an inter-fund transfer as one balanced draft
// entry: a debit leg against the source account tagged with the source fund
// and a credit leg against the target account tagged with the target fund.
func (s *JournalServiceImpl) RecordFundTransfer(ctx context.Context, params FundTransferParams) (*journal.Entry, error) {
	if params.FromFundID == params.ToFundID {
		return nil, ErrSameFund
	}
	for _, fundID := range []uuid.UUID{params.FromFundID, params.ToFundID} {
		if _, err := s.fundRepo.GetByID(ctx, fundID); err != nil {
			return nil, err
		}
	}

	fromFund := params.FromFundID
	toFund := params.ToFundID
	return s.CreateEntry(ctx, CreateEntryParams{
		EntityID:    params.EntityID,
		Timestamp:   params.Timestamp,
		Description: params.Description,
		Lines: []EntryLine{
			{
				AccountID:   params.SourceAccountID,
				Type:        ledger.TxTypeDebit,
				Amount:      params.Amount,
				Description: params.Description,
				FundID:      &fromFund,
			},
			{
				AccountID:   params.TargetAccountID,
				Type:        ledger.TxTypeCredit,
				Amount:      params.Amount,
				Description: params.Description,
				FundID:      &toFund,
			},
		},
	})
}

// GetEntryByID retrieves a journal entry with its transactions
func (s *JournalServiceImpl) GetEntryByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	return s.journalRepo.GetByID(ctx, id)
}

// SubmitForPosting validates the double-entry invariant, transitions the
// entry to pending and publishes a posting request for the processor.
func (s *JournalServiceImpl) SubmitForPosting(ctx context.Context, id uuid.UUID, correlationID string) (*journal.Entry, error) {
	entry, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := entry.SubmitForPosting(); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	request := shared.NewPostingRequest(entry.ID, entry.EntityID, correlationID)
	if err := s.producer.Publish(ctx, entry.ID.String(), request); err != nil {
		s.logger.Error("failed to publish posting request",
			"journal_entry_id", entry.ID,
			"correlation_id", correlationID,
			"error", err)
		return nil, fmt.Errorf("failed to publish posting request: %w", err)
	}

	s.logger.Info("journal entry submitted for posting",
		"journal_entry_id", entry.ID,
		"correlation_id", correlationID)
	return entry, nil
}

// LockEntry freezes a posted entry against modification
func (s *JournalServiceImpl) LockEntry(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	return s.transition(ctx, id, (*journal.Entry).Lock)
}

// UnlockEntry releases a locked posted entry
func (s *JournalServiceImpl) UnlockEntry(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	return s.transition(ctx, id, (*journal.Entry).Unlock)
}

func (s *JournalServiceImpl) transition(ctx context.Context, id uuid.UUID, apply func(*journal.Entry) error) (*journal.Entry, error) {
	entry, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(entry); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalServiceImpl) checkAccount(ctx context.Context, accountID, entityID uuid.UUID) error {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !acc.Active {
		return fmt.Errorf("account %s: %w", acc.Code, ErrAccountInactive)
	}
	if acc.EntityID != entityID {
		return fmt.Errorf("account %s: %w", acc.Code, ErrEntityMismatch)
	}
	return nil
}
