// Package fund models the nonprofit fund dimension. Funds segregate
// resources by restriction (general, building, endowment, ...) and tag
// individual transactions, so a single journal entry may touch several
// funds.
package fund

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCode = errors.New("fund code cannot be empty")
	ErrEmptyName = errors.New("fund name cannot be empty")
)

// Fund is one resource pool within an entity.
type Fund struct {
	ID        uuid.UUID `json:"id"`
	EntityID  uuid.UUID `json:"entity_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFund creates a new fund for an entity.
func NewFund(entityID uuid.UUID, code, name string) (*Fund, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	return &Fund{
		ID:        uuid.New(),
		EntityID:  entityID,
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
