package service

import (
	"testing"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	"github.com/ThotaNithin79/Billing-Application/internal/testutil"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/stretchr/testify/suite"
)

type HistoryServiceSuite struct {
	suite.Suite
	revStore *testutil.InMemoryRevisionStore
	service  HistoryService
}

func TestHistoryService(t *testing.T) {
	suite.Run(t, new(HistoryServiceSuite))
}

func (s *HistoryServiceSuite) SetupTest() {
	s.revStore = testutil.NewInMemoryRevisionStore()
	s.service = NewHistoryService(ServiceParams{
		Logger:       testutil.GetLogger(),
		DB:           testutil.NewMockPostgresClient(),
		RevisionRepo: s.revStore,
	})
}

func (s *HistoryServiceSuite) record(b *bill.Bill, actor string, kind types.ChangeKind) {
	err := s.revStore.Create(s.T().Context(), revision.NewFromBill(b, actor, kind))
	s.NoError(err)
}

func (s *HistoryServiceSuite) TestUnknownBillYieldsEmptyHistory() {
	history, err := s.service.GetBillHistory(s.T().Context(), "bill_missing")
	s.NoError(err)
	s.Empty(history)
}

func (s *HistoryServiceSuite) TestHistoryIsNewestFirst() {
	ctx := testutil.SetupContext("user_planner1")
	b := bill.NewBill(ctx)
	b.BookingOrderNumber = "BO-2026-001"

	s.record(b, "user_planner1", types.ChangeKindCreated)
	b.WorkflowStatus = types.BillWorkflowStatusROCreated
	s.record(b, "user_ro1", types.ChangeKindModified)
	b.WorkflowStatus = types.BillWorkflowStatusRORejected
	s.record(b, "user_inv1", types.ChangeKindModified)

	history, err := s.service.GetBillHistory(ctx, b.ID)
	s.NoError(err)
	s.Len(history, 3)
	s.Equal(int64(3), history[0].Sequence)
	s.Equal(int64(2), history[1].Sequence)
	s.Equal(int64(1), history[2].Sequence)
	s.Equal("user_inv1", history[0].Actor)
	s.Equal(types.BillWorkflowStatusRORejected, history[0].WorkflowStatus)
	s.Equal(types.ChangeKindCreated, history[2].ChangeKind)
}

func (s *HistoryServiceSuite) TestHistoryIsScopedToOneBill() {
	ctx := testutil.SetupContext("user_planner1")
	first := bill.NewBill(ctx)
	second := bill.NewBill(ctx)

	s.record(first, "user_planner1", types.ChangeKindCreated)
	s.record(second, "user_planner1", types.ChangeKindCreated)
	first.WorkflowStatus = types.BillWorkflowStatusROCreated
	s.record(first, "user_ro1", types.ChangeKindModified)

	history, err := s.service.GetBillHistory(ctx, first.ID)
	s.NoError(err)
	s.Len(history, 2)
	for _, entry := range history {
		s.Equal(first.ID, entry.BillID)
	}

	// The sequence counter is shared across bills, so the second bill's
	// single entry carries the store-wide number it was assigned.
	history, err = s.service.GetBillHistory(ctx, second.ID)
	s.NoError(err)
	s.Len(history, 1)
	s.Equal(int64(2), history[0].Sequence)
}
