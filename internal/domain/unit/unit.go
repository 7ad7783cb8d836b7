// Package unit models entity units: organizational segments (branches,
// departments, programs) that journal entries may be attributed to and that
// income statements can be broken down by.
package unit

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("unit name cannot be empty")

// EntityUnit is one organizational segment of an entity.
type EntityUnit struct {
	ID        uuid.UUID `json:"id"`
	EntityID  uuid.UUID `json:"entity_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntityUnit creates a new unit for an entity.
func NewEntityUnit(entityID uuid.UUID, name string) (*EntityUnit, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	return &EntityUnit{
		ID:        uuid.New(),
		EntityID:  entityID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
