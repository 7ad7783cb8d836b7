package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/fund"
	"github.com/nonprofit-fund-ledger/internal/platform/persistence"
)

// FundRepository implements the fund.Repository interface for PostgreSQL
type FundRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewFundRepository creates a new PostgreSQL fund repository
func NewFundRepository(logger *slog.Logger, db *persistence.PostgresDB) fund.Repository {
	return &FundRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *FundRepository) WithTx(tx pgx.Tx) fund.Repository {
	return &FundRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new fund
func (r *FundRepository) Create(ctx context.Context, f *fund.Fund) error {
	query := `
		INSERT INTO funds (id, entity_id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		f.ID,
		f.EntityID,
		f.Code,
		f.Name,
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create fund", "code", f.Code, "error", err)
		return fmt.Errorf("failed to create fund: %w", err)
	}

	return nil
}

// GetByID retrieves a fund by its ID
func (r *FundRepository) GetByID(ctx context.Context, id uuid.UUID) (*fund.Fund, error) {
	query := `
		SELECT id, entity_id, code, name, created_at, updated_at
		FROM funds
		WHERE id = $1
	`

	var f fund.Fund
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.EntityID,
		&f.Code,
		&f.Name,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fund.ErrFundNotFound{FundID: id}
		}
		r.logger.Error("Failed to get fund", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get fund: %w", err)
	}

	return &f, nil
}

// ListByEntity returns all funds of an entity ordered by code
func (r *FundRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*fund.Fund, error) {
	query := `
		SELECT id, entity_id, code, name, created_at, updated_at
		FROM funds
		WHERE entity_id = $1
		ORDER BY code ASC
	`

	rows, err := r.querier.Query(ctx, query, entityID)
	if err != nil {
		r.logger.Error("Failed to list funds", "entity_id", entityID.String(), "error", err)
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	defer rows.Close()

	var funds []*fund.Fund
	for rows.Next() {
		var f fund.Fund
		err := rows.Scan(
			&f.ID,
			&f.EntityID,
			&f.Code,
			&f.Name,
			&f.CreatedAt,
			&f.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan fund", "error", err)
			return nil, fmt.Errorf("failed to scan fund: %w", err)
		}
		funds = append(funds, &f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over funds", "error", err)
		return nil, fmt.Errorf("error iterating over funds: %w", err)
	}

	return funds, nil
}
