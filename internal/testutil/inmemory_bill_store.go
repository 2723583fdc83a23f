package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

// InMemoryBillStore implements bill.Repository over a map for service tests.
type InMemoryBillStore struct {
	mu    sync.RWMutex
	bills map[string]*bill.Bill
}

func NewInMemoryBillStore() *InMemoryBillStore {
	return &InMemoryBillStore{
		bills: make(map[string]*bill.Bill),
	}
}

func (s *InMemoryBillStore) Create(ctx context.Context, b *bill.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bills[b.ID]; ok {
		return ierr.NewErrorf("bill %s already exists", b.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range s.bills {
		if existing.BookingOrderNumber == b.BookingOrderNumber {
			return ierr.NewErrorf("booking order number %s is already in use", b.BookingOrderNumber).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	copied := *b
	s.bills[b.ID] = &copied
	return nil
}

func (s *InMemoryBillStore) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bills[id]
	if !ok {
		return nil, ierr.NewErrorf("bill %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *b
	return &copied, nil
}

func (s *InMemoryBillStore) GetByIDForUpdate(ctx context.Context, id string) (*bill.Bill, error) {
	return s.GetByID(ctx, id)
}

func (s *InMemoryBillStore) Update(ctx context.Context, b *bill.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bills[b.ID]; !ok {
		return ierr.NewErrorf("bill %s was not found", b.ID).
			Mark(ierr.ErrNotFound)
	}
	for _, existing := range s.bills {
		if existing.ID != b.ID && existing.BookingOrderNumber == b.BookingOrderNumber {
			return ierr.NewErrorf("booking order number %s is already in use", b.BookingOrderNumber).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	copied := *b
	s.bills[b.ID] = &copied
	return nil
}

func (s *InMemoryBillStore) ExistsByBookingOrderNumber(ctx context.Context, bookingOrderNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bills {
		if b.BookingOrderNumber == bookingOrderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryBillStore) List(ctx context.Context, filter *types.BillFilter) ([]*bill.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filtered(filter)
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	offset := filter.GetOffset()
	if offset >= len(matched) {
		return []*bill.Bill{}, nil
	}
	end := offset + filter.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *InMemoryBillStore) Count(ctx context.Context, filter *types.BillFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.filtered(filter))), nil
}

func (s *InMemoryBillStore) filtered(filter *types.BillFilter) []*bill.Bill {
	var matched []*bill.Bill
	for _, b := range s.bills {
		if filter != nil {
			if filter.WorkflowStatus != nil && b.WorkflowStatus != *filter.WorkflowStatus {
				continue
			}
			if filter.ActivityStatus != nil && b.ActivityStatus != *filter.ActivityStatus {
				continue
			}
			if filter.ClientName != nil && b.ClientName != *filter.ClientName {
				continue
			}
		}
		copied := *b
		matched = append(matched, &copied)
	}
	return matched
}

func (s *InMemoryBillStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = make(map[string]*bill.Bill)
}
