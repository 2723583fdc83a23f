package service

import (
	"context"
	"sort"

	"github.com/ThotaNithin79/Billing-Application/internal/api/dto"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	"github.com/samber/lo"
)

// HistoryService projects a bill's revision snapshots into a timeline.
type HistoryService interface {
	// GetBillHistory returns every recorded revision of the bill, newest
	// first by sequence number. A bill with no revisions yields an empty
	// slice, not an error.
	GetBillHistory(ctx context.Context, billID string) ([]*dto.BillHistoryEntryResponse, error)
}

type historyService struct {
	ServiceParams
}

func NewHistoryService(params ServiceParams) HistoryService {
	return &historyService{ServiceParams: params}
}

func (s *historyService) GetBillHistory(ctx context.Context, billID string) ([]*dto.BillHistoryEntryResponse, error) {
	revisions, err := s.RevisionRepo.ListByBillID(ctx, billID)
	if err != nil {
		return nil, err
	}

	// The store gives no ordering guarantee; the projection owns it.
	// Sequence is strictly monotonic, so it orders revisions even when two
	// share a wall-clock timestamp.
	sort.Slice(revisions, func(i, j int) bool {
		return revisions[i].Sequence > revisions[j].Sequence
	})

	return lo.Map(revisions, func(rev *revision.Revision, _ int) *dto.BillHistoryEntryResponse {
		return dto.NewBillHistoryEntryResponse(rev)
	}), nil
}
