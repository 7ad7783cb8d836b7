package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/unit"
	"github.com/nonprofit-fund-ledger/internal/platform/persistence"
)

// UnitRepository implements the unit.Repository interface for PostgreSQL
type UnitRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewUnitRepository creates a new PostgreSQL entity unit repository
func NewUnitRepository(logger *slog.Logger, db *persistence.PostgresDB) unit.Repository {
	return &UnitRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations
func (r *UnitRepository) WithTx(tx pgx.Tx) unit.Repository {
	return &UnitRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new entity unit
func (r *UnitRepository) Create(ctx context.Context, u *unit.EntityUnit) error {
	query := `
		INSERT INTO entity_units (id, entity_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query,
		u.ID,
		u.EntityID,
		u.Name,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create entity unit", "name", u.Name, "error", err)
		return fmt.Errorf("failed to create entity unit: %w", err)
	}

	return nil
}

// GetByID retrieves an entity unit by its ID
func (r *UnitRepository) GetByID(ctx context.Context, id uuid.UUID) (*unit.EntityUnit, error) {
	query := `
		SELECT id, entity_id, name, created_at, updated_at
		FROM entity_units
		WHERE id = $1
	`

	var u unit.EntityUnit
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.EntityID,
		&u.Name,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, unit.ErrUnitNotFound{UnitID: id}
		}
		r.logger.Error("Failed to get entity unit", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get entity unit: %w", err)
	}

	return &u, nil
}

// ListByEntity returns all units of an entity ordered by name
func (r *UnitRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*unit.EntityUnit, error) {
	query := `
		SELECT id, entity_id, name, created_at, updated_at
		FROM entity_units
		WHERE entity_id = $1
		ORDER BY name ASC
	`

	rows, err := r.querier.Query(ctx, query, entityID)
	if err != nil {
		r.logger.Error("Failed to list entity units", "entity_id", entityID.String(), "error", err)
		return nil, fmt.Errorf("failed to list entity units: %w", err)
	}
	defer rows.Close()

	var units []*unit.EntityUnit
	for rows.Next() {
		var u unit.EntityUnit
		err := rows.Scan(
			&u.ID,
			&u.EntityID,
			&u.Name,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan entity unit", "error", err)
			return nil, fmt.Errorf("failed to scan entity unit: %w", err)
		}
		units = append(units, &u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over entity units", "error", err)
		return nil, fmt.Errorf("error iterating over entity units: %w", err)
	}

	return units, nil
}
