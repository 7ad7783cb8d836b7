// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations while maintaining
// transaction safety and proper error handling for the fund ledger system.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nonprofit-fund-ledger/internal/domain/account"
	"github.com/nonprofit-fund-ledger/internal/platform/persistence"
)

const uniqueViolationCode = "23505"

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(), // Initialize with the pool
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx, // Use the transaction
		logger:  r.logger,
	}
}

// Create stores a new account. Account codes are unique per entity; a
// duplicate code surfaces as account.ErrDuplicateCode.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, entity_id, code, name, balance_type, classification, unit_id, fund_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID,
		acc.EntityID,
		acc.Code,
		acc.Name,
		acc.BalanceType,
		acc.Classification,
		acc.UnitID,
		acc.FundID,
		acc.Active,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return account.ErrDuplicateCode{EntityID: acc.EntityID, Code: acc.Code}
		}
		r.logger.Error("Failed to create account", "code", acc.Code, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, entity_id, code, name, balance_type, classification, unit_id, fund_id, active, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.EntityID,
		&acc.Code,
		&acc.Name,
		&acc.BalanceType,
		&acc.Classification,
		&acc.UnitID,
		&acc.FundID,
		&acc.Active,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// GetByCode retrieves an account by its code within an entity
func (r *AccountRepository) GetByCode(ctx context.Context, entityID uuid.UUID, code string) (*account.Account, error) {
	query := `
		SELECT id, entity_id, code, name, balance_type, classification, unit_id, fund_id, active, created_at, updated_at
		FROM accounts
		WHERE entity_id = $1 AND code = $2
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, entityID, code).Scan(
		&acc.ID,
		&acc.EntityID,
		&acc.Code,
		&acc.Name,
		&acc.BalanceType,
		&acc.Classification,
		&acc.UnitID,
		&acc.FundID,
		&acc.Active,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{}
		}
		r.logger.Error("Failed to get account by code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to get account by code: %w", err)
	}

	return &acc, nil
}

// ListByEntity returns all accounts of an entity ordered by code
func (r *AccountRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*account.Account, error) {
	query := `
		SELECT id, entity_id, code, name, balance_type, classification, unit_id, fund_id, active, created_at, updated_at
		FROM accounts
		WHERE entity_id = $1
		ORDER BY code ASC
	`

	rows, err := r.querier.Query(ctx, query, entityID)
	if err != nil {
		r.logger.Error("Failed to list accounts", "entity_id", entityID.String(), "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var acc account.Account
		err := rows.Scan(
			&acc.ID,
			&acc.EntityID,
			&acc.Code,
			&acc.Name,
			&acc.BalanceType,
			&acc.Classification,
			&acc.UnitID,
			&acc.FundID,
			&acc.Active,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan account", "error", err)
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &acc)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over accounts", "error", err)
		return nil, fmt.Errorf("error iterating over accounts: %w", err)
	}

	return accounts, nil
}
