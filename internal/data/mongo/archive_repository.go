// Package mongo provides MongoDB implementations of the read-side report
// repositories: the digest snapshot archive and the posted-entry audit trail.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nonprofit-fund-ledger/internal/domain/report"
)

const (
	// ArchiveCollectionName is the name of the digest snapshot collection
	ArchiveCollectionName = "digest_snapshots"
)

// ArchiveRepository implements report.ArchiveRepository for MongoDB
type ArchiveRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewArchiveRepository creates a new MongoDB digest archive repository
func NewArchiveRepository(logger *slog.Logger, db *mongo.Database) report.ArchiveRepository {
	return &ArchiveRepository{
		db:     db,
		logger: logger,
	}
}

// Archive stores a digest snapshot
func (r *ArchiveRepository) Archive(ctx context.Context, snapshot *report.DigestSnapshot) error {
	collection := r.db.Collection(ArchiveCollectionName)

	_, err := collection.InsertOne(ctx, snapshot)
	if err != nil {
		r.logger.Error("Failed to archive digest snapshot",
			"snapshot_id", snapshot.ID.String(),
			"entity_id", snapshot.EntityID.String(),
			"error", err)
		return fmt.Errorf("failed to archive digest snapshot: %w", err)
	}

	return nil
}

// GetByID retrieves a digest snapshot by its ID.
// Returns ErrSnapshotNotFound if no snapshot exists.
func (r *ArchiveRepository) GetByID(ctx context.Context, id uuid.UUID) (*report.DigestSnapshot, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"_id": id}
	var snapshot report.DigestSnapshot
	err := collection.FindOne(ctx, filter).Decode(&snapshot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, report.ErrSnapshotNotFound{SnapshotID: id}
		}
		r.logger.Error("Failed to get digest snapshot",
			"snapshot_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get digest snapshot: %w", err)
	}

	return &snapshot, nil
}

// ListByEntity retrieves paginated digest snapshots for an entity.
// Results are sorted by generation time in descending order (newest first).
func (r *ArchiveRepository) ListByEntity(ctx context.Context, entityID uuid.UUID, limit, offset int) ([]*report.DigestSnapshot, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"entity_id": entityID}
	opts := options.Find().
		SetSort(bson.M{"generated_at": -1}). // Newest first
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list digest snapshots",
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list digest snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snapshots []*report.DigestSnapshot
	if err := cursor.All(ctx, &snapshots); err != nil {
		r.logger.Error("Failed to decode digest snapshots",
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode digest snapshots: %w", err)
	}

	return snapshots, nil
}

// CountByEntity counts the archived snapshots for an entity
func (r *ArchiveRepository) CountByEntity(ctx context.Context, entityID uuid.UUID) (int64, error) {
	collection := r.db.Collection(ArchiveCollectionName)

	filter := bson.M{"entity_id": entityID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count digest snapshots",
			"entity_id", entityID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count digest snapshots: %w", err)
	}

	return count, nil
}
