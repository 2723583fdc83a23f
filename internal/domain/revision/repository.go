package revision

import "context"

// Repository is the append-only revision store. The interface intentionally
// has no update or delete: a revision's lifetime is indefinite and its content
// is frozen at insert.
type Repository interface {
	// Create inserts the revision and fills in its assigned sequence number.
	// It must run inside the same transaction as the live-record write it
	// snapshots.
	Create(ctx context.Context, rev *Revision) error
	// ListByBillID returns all revisions for one bill with no ordering
	// guarantee; ordering is the history projection's job.
	ListByBillID(ctx context.Context, billID string) ([]*Revision, error)
	// CountByBillID returns the number of revisions recorded for one bill.
	CountByBillID(ctx context.Context, billID string) (int64, error)
}
