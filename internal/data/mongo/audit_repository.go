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
	// AuditCollectionName is the name of the posted-entry audit collection
	AuditCollectionName = "posted_entries"
)

// AuditRepository implements report.AuditRepository for MongoDB
type AuditRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewAuditRepository creates a new MongoDB posted-entry audit repository
func NewAuditRepository(logger *slog.Logger, db *mongo.Database) report.AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Record stores a posted-entry audit document after checking for duplicates.
// Returns ErrDuplicateRecord if a record for the same journal entry exists,
// which keeps event publishing idempotent.
func (r *AuditRepository) Record(ctx context.Context, record *report.PostedEntryRecord) error {
	collection := r.db.Collection(AuditCollectionName)

	existing, err := r.GetByJournalEntryID(ctx, record.JournalEntryID)
	if err != nil && !errors.Is(err, report.ErrRecordNotFound{}) {
		r.logger.Error("Failed to check for existing audit record",
			"journal_entry_id", record.JournalEntryID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing audit record: %w", err)
	}

	if existing != nil {
		return report.ErrDuplicateRecord{JournalEntryID: record.JournalEntryID}
	}

	_, err = collection.InsertOne(ctx, record)
	if err != nil {
		r.logger.Error("Failed to record posted entry",
			"journal_entry_id", record.JournalEntryID.String(),
			"error", err)
		return fmt.Errorf("failed to record posted entry: %w", err)
	}

	return nil
}

// GetByJournalEntryID retrieves an audit record by journal entry ID.
// Returns ErrRecordNotFound if no record exists for the given entry.
func (r *AuditRepository) GetByJournalEntryID(ctx context.Context, journalEntryID uuid.UUID) (*report.PostedEntryRecord, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"journal_entry_id": journalEntryID}
	var record report.PostedEntryRecord
	err := collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, report.ErrRecordNotFound{JournalEntryID: journalEntryID}
		}
		r.logger.Error("Failed to get audit record",
			"journal_entry_id", journalEntryID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get audit record: %w", err)
	}

	return &record, nil
}

// ListByEntity retrieves paginated audit records for an entity.
// Results are sorted by posting time in descending order (newest first).
func (r *AuditRepository) ListByEntity(ctx context.Context, entityID uuid.UUID, limit, offset int) ([]*report.PostedEntryRecord, error) {
	collection := r.db.Collection(AuditCollectionName)

	filter := bson.M{"entity_id": entityID}
	opts := options.Find().
		SetSort(bson.M{"posted_at": -1}). // Newest first
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list audit records",
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*report.PostedEntryRecord
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode audit records",
			"entity_id", entityID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}

	return records, nil
}
