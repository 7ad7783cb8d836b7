package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/ledger"
	"github.com/nonprofit-fund-ledger/internal/platform/persistence"
)

// JournalRepository implements the journal.Repository interface for
// PostgreSQL. Entries span two tables (journal_entries and transactions)
// and are always read and written together.
type JournalRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewJournalRepository creates a new PostgreSQL journal repository
func NewJournalRepository(logger *slog.Logger, db *persistence.PostgresDB) journal.Repository {
	return &JournalRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *JournalRepository) WithTx(tx pgx.Tx) journal.Repository {
	return &JournalRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new journal entry together with its transactions
func (r *JournalRepository) Create(ctx context.Context, entry *journal.Entry) error {
	query := `
		INSERT INTO journal_entries (id, entity_id, timestamp, description, unit_id, status, locked, failure_reason, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(ctx, query,
		entry.ID,
		entry.EntityID,
		entry.Timestamp,
		entry.Description,
		entry.UnitID,
		entry.Status,
		entry.Locked,
		entry.FailureReason,
		entry.Version,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create journal entry", "id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return r.insertTransactions(ctx, entry)
}

// GetByID retrieves a journal entry with all its transactions
func (r *JournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	query := `
		SELECT id, entity_id, timestamp, description, unit_id, status, locked, failure_reason, version, created_at, updated_at
		FROM journal_entries
		WHERE id = $1
	`

	entry, err := r.scanEntry(r.querier.QueryRow(ctx, query, id), id)
	if err != nil {
		return nil, err
	}

	if err := r.loadTransactions(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Update persists the entry header using optimistic locking on Version.
// Returns ErrConcurrentModification when the stored version moved on.
func (r *JournalRepository) Update(ctx context.Context, entry *journal.Entry) error {
	query := `
		UPDATE journal_entries
		SET timestamp = $1, description = $2, unit_id = $3, status = $4, locked = $5, failure_reason = $6, version = $7, updated_at = $8
		WHERE id = $9 AND version = $10
	`

	result, err := r.querier.Exec(ctx, query,
		entry.Timestamp,
		entry.Description,
		entry.UnitID,
		entry.Status,
		entry.Locked,
		entry.FailureReason,
		entry.Version,
		entry.UpdatedAt,
		entry.ID,
		entry.Version-1, // Check previous version for optimistic locking
	)
	if err != nil {
		r.logger.Error("Failed to update journal entry", "id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to update journal entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return journal.ErrConcurrentModification{JournalEntryID: entry.ID}
	}

	return nil
}

// ReplaceTransactions swaps a draft entry's transaction set. Meant to be
// called inside ExecuteTx so the delete and re-insert are atomic.
func (r *JournalRepository) ReplaceTransactions(ctx context.Context, entry *journal.Entry) error {
	query := `
		DELETE FROM transactions
		WHERE journal_entry_id = $1
	`

	if _, err := r.querier.Exec(ctx, query, entry.ID); err != nil {
		r.logger.Error("Failed to delete journal entry transactions", "id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to delete journal entry transactions: %w", err)
	}

	return r.insertTransactions(ctx, entry)
}

// LockForPosting obtains a row lock on the entry and returns its current
// state with transactions. Used within the posting transaction so concurrent
// posting requests for one entry serialize.
func (r *JournalRepository) LockForPosting(ctx context.Context, id uuid.UUID) (*journal.Entry, error) {
	query := `
		SELECT id, entity_id, timestamp, description, unit_id, status, locked, failure_reason, version, created_at, updated_at
		FROM journal_entries
		WHERE id = $1
		FOR UPDATE
	`

	entry, err := r.scanEntry(r.querier.QueryRow(ctx, query, id), id)
	if err != nil {
		return nil, err
	}

	if err := r.loadTransactions(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListRows materializes ledger rows (transaction joined with journal entry
// and account attributes) for an entity and date interval. Drafts, pending
// and failed entries come back with posted = false so the aggregation engine
// can exclude them.
func (r *JournalRepository) ListRows(ctx context.Context, entityID uuid.UUID, from, to time.Time) ([]ledger.Transaction, error) {
	query := `
		SELECT t.journal_entry_id, je.status = 'posted', je.timestamp,
		       a.id, a.code, a.name, a.balance_type, a.classification,
		       t.tx_type, t.amount, je.unit_id, u.name, t.fund_id
		FROM transactions t
		JOIN journal_entries je ON t.journal_entry_id = je.id
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN entity_units u ON je.unit_id = u.id
		WHERE je.entity_id = $1 AND je.timestamp >= $2 AND je.timestamp <= $3
		ORDER BY je.timestamp ASC, t.created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, entityID, from, to)
	if err != nil {
		r.logger.Error("Failed to list ledger rows", "entity_id", entityID.String(), "error", err)
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}
	defer rows.Close()

	return scanLedgerRows(rows)
}

// ListRowsByAccount returns paginated ledger rows for one account, newest
// first, together with the total row count.
func (r *JournalRepository) ListRowsByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]ledger.Transaction, int64, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM transactions t
		WHERE t.account_id = $1
	`

	var total int64
	if err := r.querier.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		r.logger.Error("Failed to count ledger rows", "account_id", accountID.String(), "error", err)
		return nil, 0, fmt.Errorf("failed to count ledger rows: %w", err)
	}

	query := `
		SELECT t.journal_entry_id, je.status = 'posted', je.timestamp,
		       a.id, a.code, a.name, a.balance_type, a.classification,
		       t.tx_type, t.amount, je.unit_id, u.name, t.fund_id
		FROM transactions t
		JOIN journal_entries je ON t.journal_entry_id = je.id
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN entity_units u ON je.unit_id = u.id
		WHERE t.account_id = $1
		ORDER BY je.timestamp DESC, t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.querier.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list ledger rows by account", "account_id", accountID.String(), "error", err)
		return nil, 0, fmt.Errorf("failed to list ledger rows by account: %w", err)
	}
	defer rows.Close()

	ledgerRows, err := scanLedgerRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return ledgerRows, total, nil
}

func (r *JournalRepository) insertTransactions(ctx context.Context, entry *journal.Entry) error {
	query := `
		INSERT INTO transactions (id, journal_entry_id, account_id, tx_type, amount, description, fund_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i := range entry.Transactions {
		tx := &entry.Transactions[i]
		_, err := r.querier.Exec(ctx, query,
			tx.ID,
			tx.JournalEntryID,
			tx.AccountID,
			tx.TxType,
			tx.Amount,
			tx.Description,
			tx.FundID,
			tx.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to create transaction",
				"journal_entry_id", entry.ID.String(),
				"account_id", tx.AccountID.String(),
				"error", err,
			)
			return fmt.Errorf("failed to create transaction: %w", err)
		}
	}

	return nil
}

func (r *JournalRepository) loadTransactions(ctx context.Context, entry *journal.Entry) error {
	query := `
		SELECT id, journal_entry_id, account_id, tx_type, amount, description, fund_id, created_at
		FROM transactions
		WHERE journal_entry_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, entry.ID)
	if err != nil {
		r.logger.Error("Failed to load journal entry transactions", "id", entry.ID.String(), "error", err)
		return fmt.Errorf("failed to load journal entry transactions: %w", err)
	}
	defer rows.Close()

	entry.Transactions = nil
	for rows.Next() {
		var tx journal.Transaction
		err := rows.Scan(
			&tx.ID,
			&tx.JournalEntryID,
			&tx.AccountID,
			&tx.TxType,
			&tx.Amount,
			&tx.Description,
			&tx.FundID,
			&tx.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan transaction", "error", err)
			return fmt.Errorf("failed to scan transaction: %w", err)
		}
		entry.Transactions = append(entry.Transactions, tx)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over transactions", "error", err)
		return fmt.Errorf("error iterating over transactions: %w", err)
	}

	return nil
}

func (r *JournalRepository) scanEntry(row pgx.Row, id uuid.UUID) (*journal.Entry, error) {
	var entry journal.Entry
	err := row.Scan(
		&entry.ID,
		&entry.EntityID,
		&entry.Timestamp,
		&entry.Description,
		&entry.UnitID,
		&entry.Status,
		&entry.Locked,
		&entry.FailureReason,
		&entry.Version,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, journal.ErrEntryNotFound{JournalEntryID: id}
		}
		r.logger.Error("Failed to get journal entry", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return &entry, nil
}

// scanLedgerRows converts joined rows into engine input. Nullable unit and
// fund columns collapse to uuid.Nil / empty string.
func scanLedgerRows(rows pgx.Rows) ([]ledger.Transaction, error) {
	var result []ledger.Transaction
	for rows.Next() {
		var (
			row      ledger.Transaction
			unitID   *uuid.UUID
			unitName *string
			fundID   *uuid.UUID
		)
		err := rows.Scan(
			&row.JournalEntryID,
			&row.EntryPosted,
			&row.Date,
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.BalanceType,
			&row.Classification,
			&row.TxType,
			&row.Amount,
			&unitID,
			&unitName,
			&fundID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		if unitID != nil {
			row.UnitID = *unitID
		}
		if unitName != nil {
			row.UnitName = *unitName
		}
		if fundID != nil {
			row.FundID = *fundID
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over ledger rows: %w", err)
	}

	return result, nil
}
