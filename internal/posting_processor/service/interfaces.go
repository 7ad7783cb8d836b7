package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/nonprofit-fund-ledger/internal/domain/journal"
	"github.com/nonprofit-fund-ledger/internal/domain/shared"
)

// ProcessingService defines the interface for processing posting requests.
type ProcessingService interface {
	ProcessPosting(ctx context.Context, request *shared.PostingRequest) error
}

// EntryValidator validates posting requests before processing
type EntryValidator interface {
	Validate(ctx context.Context, request *shared.PostingRequest) error
	CheckIdempotency(ctx context.Context, request *shared.PostingRequest) (bool, error)
}

// PostingManager locks the journal entry and transitions it to posted inside
// the processing transaction
type PostingManager interface {
	LockAndPost(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest) (*journal.Entry, error)
}

// OutboxManager writes the posted-entry event to the transactional outbox
type OutboxManager interface {
	CreateOutboxEntry(ctx context.Context, tx pgx.Tx, request *shared.PostingRequest, entry *journal.Entry) error
}

// FailureRecorder marks journal entries whose posting was rejected
type FailureRecorder interface {
	RecordFailure(ctx context.Context, request *shared.PostingRequest, failureReason string) error
}
