package shared

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)

// PostingFailureReason defines posting failure categories recorded on a
// journal entry when the processor rejects it.
type PostingFailureReason string

const (
	FailureReasonNotPending      PostingFailureReason = "ENTRY_NOT_PENDING"
	FailureReasonUnbalancedEntry PostingFailureReason = "UNBALANCED_ENTRY"
	FailureReasonEntryLocked     PostingFailureReason = "ENTRY_LOCKED"
	FailureReasonNoTransactions  PostingFailureReason = "NO_TRANSACTIONS"
	FailureReasonUnknownError    PostingFailureReason = "UNKNOWN_ERROR"
)
