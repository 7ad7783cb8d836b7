package fund

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines fund persistence operations
type Repository interface {
	Create(ctx context.Context, fund *Fund) error
	GetByID(ctx context.Context, id uuid.UUID) (*Fund, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*Fund, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrFundNotFound indicates missing fund
type ErrFundNotFound struct {
	FundID uuid.UUID
}

func (e ErrFundNotFound) Error() string {
	return "fund not found: " + e.FundID.String()
}

// Is implements the errors.Is interface; a target with a nil fund ID matches
// any ErrFundNotFound.
func (e ErrFundNotFound) Is(target error) bool {
	t, ok := target.(ErrFundNotFound)
	if !ok {
		return false
	}
	if t.FundID == uuid.Nil {
		return true
	}
	return e.FundID == t.FundID
}
