// Package report models the read-side artifacts of the ledger: archived
// digest snapshots and the posted-entry audit trail. Both live in the
// document store, so monetary amounts are carried as fixed-point strings.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/nonprofit-fund-ledger/internal/ledger"
)

// DigestSnapshot is one archived income statement digest. Payload holds the
// full digest as rendered to the caller; the top-level fields are denormalized
// for querying.
type DigestSnapshot struct {
	ID            uuid.UUID `bson:"_id" json:"id"`
	EntityID      uuid.UUID `bson:"entity_id" json:"entity_id"`
	CorrelationID string    `bson:"correlation_id" json:"correlation_id"`
	ByUnit        bool      `bson:"by_unit" json:"by_unit"`
	FromDate      time.Time `bson:"from_date" json:"from_date"`
	ToDate        time.Time `bson:"to_date" json:"to_date"`
	NetIncome     string    `bson:"net_income" json:"net_income"`
	Payload       []byte    `bson:"payload" json:"-"`
	GeneratedAt   time.Time `bson:"generated_at" json:"generated_at"`
}

// NewDigestSnapshot denormalizes a digest into an archivable snapshot.
// payload is the serialized digest exactly as returned to the caller.
func NewDigestSnapshot(entityID uuid.UUID, correlationID string, digest *ledger.Digest, payload []byte) *DigestSnapshot {
	return &DigestSnapshot{
		ID:            uuid.New(),
		EntityID:      entityID,
		CorrelationID: correlationID,
		ByUnit:        digest.ByUnit,
		FromDate:      digest.FromDate,
		ToDate:        digest.ToDate,
		NetIncome:     digest.IncomeStatement.NetIncome.String(),
		Payload:       payload,
		GeneratedAt:   time.Now(),
	}
}
