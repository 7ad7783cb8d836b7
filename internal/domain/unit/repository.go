package unit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines entity unit persistence operations
type Repository interface {
	Create(ctx context.Context, unit *EntityUnit) error
	GetByID(ctx context.Context, id uuid.UUID) (*EntityUnit, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*EntityUnit, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrUnitNotFound indicates missing entity unit
type ErrUnitNotFound struct {
	UnitID uuid.UUID
}

func (e ErrUnitNotFound) Error() string {
	return "entity unit not found: " + e.UnitID.String()
}

// Is implements the errors.Is interface; a target with a nil unit ID matches
// any ErrUnitNotFound.
func (e ErrUnitNotFound) Is(target error) bool {
	t, ok := target.(ErrUnitNotFound)
	if !ok {
		return false
	}
	if t.UnitID == uuid.Nil {
		return true
	}
	return e.UnitID == t.UnitID
}
