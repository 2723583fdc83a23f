package testutil

import (
	"context"
	"sync"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
)

// InMemoryRevisionStore implements revision.Repository for service tests. The
// sequence counter is store-wide, mirroring the database's single sequence
// shared by all bills.
type InMemoryRevisionStore struct {
	mu        sync.RWMutex
	revisions []*revision.Revision
	sequence  int64
}

func NewInMemoryRevisionStore() *InMemoryRevisionStore {
	return &InMemoryRevisionStore{}
}

func (s *InMemoryRevisionStore) Create(ctx context.Context, rev *revision.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	rev.Sequence = s.sequence
	copied := *rev
	s.revisions = append(s.revisions, &copied)
	return nil
}

func (s *InMemoryRevisionStore) ListByBillID(ctx context.Context, billID string) ([]*revision.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*revision.Revision
	for _, rev := range s.revisions {
		if rev.BillID == billID {
			copied := *rev
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (s *InMemoryRevisionStore) CountByBillID(ctx context.Context, billID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, rev := range s.revisions {
		if rev.BillID == billID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryRevisionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revisions = nil
	s.sequence = 0
}
