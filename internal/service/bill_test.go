package service

import (
	"testing"
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/api/dto"
	"github.com/ThotaNithin79/Billing-Application/internal/cache"
	"github.com/ThotaNithin79/Billing-Application/internal/config"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/testutil"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/stretchr/testify/suite"
)

type BillServiceSuite struct {
	suite.Suite
	billStore *testutil.InMemoryBillStore
	revStore  *testutil.InMemoryRevisionStore
	service   BillService
	history   HistoryService
}

func TestBillService(t *testing.T) {
	suite.Run(t, new(BillServiceSuite))
}

func (s *BillServiceSuite) SetupTest() {
	s.billStore = testutil.NewInMemoryBillStore()
	s.revStore = testutil.NewInMemoryRevisionStore()

	params := ServiceParams{
		Logger:       testutil.GetLogger(),
		Config:       &config.Configuration{},
		DB:           testutil.NewMockPostgresClient(),
		BillRepo:     s.billStore,
		RevisionRepo: s.revStore,
		UserRepo:     testutil.NewInMemoryUserStore(),
		Cache:        cache.NewInMemoryCache(&config.Configuration{}, testutil.GetLogger()),
	}
	s.service = NewBillService(params)
	s.history = NewHistoryService(params)
}

func (s *BillServiceSuite) raiseRequest(bookingOrderNumber string) *dto.RaiseBillRequest {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &dto.RaiseBillRequest{
		ExecutiveName:       "Asha Rao",
		ClientName:          "Meridian Logistics",
		BillStartDate:       start,
		BillEndDate:         start.AddDate(0, 1, 0),
		BookingOrderNumber:  bookingOrderNumber,
		WorkOrderNumber:     "WO-1042",
		Remarks:             "initial raise",
		WorkOrderAttachment: "atAB12CD34_work_order.pdf",
	}
}

func (s *BillServiceSuite) TestRaiseBill() {
	ctx := testutil.SetupContext("user_planner1", types.RolePlanner.String())

	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.Equal(types.BillWorkflowStatusRaised, resp.WorkflowStatus)
	s.Equal(types.ActivityStatusActive, resp.ActivityStatus)
	s.Equal("user_planner1", resp.CreatedBy)

	history, err := s.history.GetBillHistory(ctx, resp.ID)
	s.NoError(err)
	s.Len(history, 1)
	s.Equal(types.ChangeKindCreated, history[0].ChangeKind)
	s.Equal("user_planner1", history[0].Actor)
	s.Equal(int64(1), history[0].Sequence)
}

func (s *BillServiceSuite) TestRaiseBillValidation() {
	ctx := testutil.SetupContext("user_planner1")

	req := s.raiseRequest("BO-2026-001")
	req.ClientName = ""
	_, err := s.service.RaiseBill(ctx, req)
	s.True(ierr.IsValidation(err))

	req = s.raiseRequest("BO-2026-002")
	req.BillEndDate = req.BillStartDate.AddDate(0, 0, -1)
	_, err = s.service.RaiseBill(ctx, req)
	s.True(ierr.IsValidation(err))
}

func (s *BillServiceSuite) TestRaiseBillDuplicateBookingOrderNumber() {
	ctx := testutil.SetupContext("user_planner1")

	_, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)

	_, err = s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.True(ierr.IsAlreadyExists(err))
}

func (s *BillServiceSuite) TestUnauthenticatedActorFallsBackToSystem() {
	resp, err := s.service.RaiseBill(s.T().Context(), s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	s.Equal(types.SystemActorID, resp.CreatedBy)

	history, err := s.history.GetBillHistory(s.T().Context(), resp.ID)
	s.NoError(err)
	s.Equal(types.SystemActorID, history[0].Actor)
}

func (s *BillServiceSuite) TestFullApprovalFlow() {
	ctx := testutil.SetupContext("user_planner1")
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	id := resp.ID

	roCtx := testutil.SetupContext("user_ro1", types.RoleROCreator.String())
	resp, err = s.service.AdvanceToRO(roCtx, id, &dto.StageActionRequest{
		Remarks:       "receiving order booked",
		AttachmentRef: "atRO11RO22_ro.pdf",
	})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusROCreated, resp.WorkflowStatus)
	s.Equal("atRO11RO22_ro.pdf", resp.ROAttachment)

	invCtx := testutil.SetupContext("user_inv1", types.RoleInvoiceCreator.String())
	resp, err = s.service.AdvanceToInvoice(invCtx, id, &dto.StageActionRequest{Remarks: "invoice issued"})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusInvoiceCreated, resp.WorkflowStatus)

	einvCtx := testutil.SetupContext("user_einv1", types.RoleEInvoiceCreator.String())
	resp, err = s.service.AdvanceToEInvoice(einvCtx, id, &dto.StageActionRequest{Remarks: "e-invoice filed"})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusEInvoiceCreated, resp.WorkflowStatus)

	history, err := s.history.GetBillHistory(ctx, id)
	s.NoError(err)
	s.Len(history, 4)
	// Newest first, strictly descending sequence.
	for i := 1; i < len(history); i++ {
		s.Greater(history[i-1].Sequence, history[i].Sequence)
	}
	s.Equal(types.BillWorkflowStatusEInvoiceCreated, history[0].WorkflowStatus)
	s.Equal("user_einv1", history[0].Actor)
	s.Equal(types.BillWorkflowStatusRaised, history[3].WorkflowStatus)
	s.Equal(types.ChangeKindCreated, history[3].ChangeKind)
}

func (s *BillServiceSuite) TestRejectionLoop() {
	ctx := testutil.SetupContext("user_planner1")
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	id := resp.ID

	resp, err = s.service.RejectRaisedBill(ctx, id, &dto.RejectBillRequest{Remarks: "wrong client"})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusRaiseRejected, resp.WorkflowStatus)
	s.Equal("wrong client", resp.Remarks)

	// A rejected raise can be corrected back to RAISED or advanced directly.
	req := &dto.PlannerUpdateRequest{
		ExecutiveName:      "Asha Rao",
		ClientName:         "Meridian Freight",
		BillStartDate:      resp.BillStartDate,
		BillEndDate:        resp.BillEndDate,
		BookingOrderNumber: "BO-2026-001",
		Remarks:            "client corrected",
	}
	resp, err = s.service.CorrectByPlanner(ctx, id, req)
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusRaised, resp.WorkflowStatus)
	s.Equal("Meridian Freight", resp.ClientName)
}

func (s *BillServiceSuite) TestRejectRequiresRemarks() {
	ctx := testutil.SetupContext("user_planner1")
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)

	_, err = s.service.RejectRaisedBill(ctx, resp.ID, &dto.RejectBillRequest{})
	s.True(ierr.IsValidation(err))
}

func (s *BillServiceSuite) TestIllegalTransitions() {
	ctx := testutil.SetupContext("user_planner1")
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	id := resp.ID

	// Stage skipping is refused.
	_, err = s.service.AdvanceToInvoice(ctx, id, &dto.StageActionRequest{})
	s.True(ierr.IsInvalidTransition(err))
	_, err = s.service.AdvanceToEInvoice(ctx, id, &dto.StageActionRequest{})
	s.True(ierr.IsInvalidTransition(err))

	// A failed attempt records nothing.
	count, err := s.revStore.CountByBillID(ctx, id)
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *BillServiceSuite) TestNoRejectPathOutOfEInvoice() {
	ctx := testutil.SetupContext("user_planner1")
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	id := resp.ID

	_, err = s.service.AdvanceToRO(ctx, id, &dto.StageActionRequest{})
	s.NoError(err)
	_, err = s.service.AdvanceToInvoice(ctx, id, &dto.StageActionRequest{})
	s.NoError(err)
	_, err = s.service.AdvanceToEInvoice(ctx, id, &dto.StageActionRequest{})
	s.NoError(err)

	// E-invoicing is terminal for rejections: every reject operation is
	// illegal from EINVOICE_CREATED. Corrections in place still work.
	_, err = s.service.RejectRaisedBill(ctx, id, &dto.RejectBillRequest{Remarks: "no"})
	s.True(ierr.IsInvalidTransition(err))
	_, err = s.service.RejectRO(ctx, id, &dto.RejectBillRequest{Remarks: "no"})
	s.True(ierr.IsInvalidTransition(err))
	_, err = s.service.RejectInvoice(ctx, id, &dto.RejectBillRequest{Remarks: "no"})
	s.True(ierr.IsInvalidTransition(err))

	updated, err := s.service.CorrectEInvoice(ctx, id, &dto.StageActionRequest{
		Remarks:       "portal reference fixed",
		AttachmentRef: "atEI55EI66_einvoice.pdf",
	})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusEInvoiceCreated, updated.WorkflowStatus)
	s.Equal("atEI55EI66_einvoice.pdf", updated.EInvoiceAttachment)
}

func (s *BillServiceSuite) TestHoldBlocksWorkflowMutations() {
	ctx := testutil.SetupContext("user_planner1")
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	id := resp.ID

	adminCtx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())
	resp, err = s.service.SetActivityStatus(adminCtx, id, &dto.UpdateActivityStatusRequest{
		ActivityStatus: types.ActivityStatusHold,
	})
	s.NoError(err)
	s.Equal(types.ActivityStatusHold, resp.ActivityStatus)
	s.Equal(types.BillWorkflowStatusRaised, resp.WorkflowStatus)

	_, err = s.service.AdvanceToRO(ctx, id, &dto.StageActionRequest{})
	s.True(ierr.IsRecordOnHold(err))
	_, err = s.service.RejectRaisedBill(ctx, id, &dto.RejectBillRequest{Remarks: "no"})
	s.True(ierr.IsRecordOnHold(err))

	// Releasing the hold is exempt from the gate; afterwards the workflow
	// resumes where it stopped.
	resp, err = s.service.SetActivityStatus(adminCtx, id, &dto.UpdateActivityStatusRequest{
		ActivityStatus: types.ActivityStatusActive,
	})
	s.NoError(err)
	s.Equal(types.ActivityStatusActive, resp.ActivityStatus)

	resp, err = s.service.AdvanceToRO(ctx, id, &dto.StageActionRequest{})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusROCreated, resp.WorkflowStatus)
}

func (s *BillServiceSuite) TestSetActivityStatusIdempotent() {
	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	id := resp.ID

	// Setting the flag to its current value is a no-op: no revision.
	resp, err = s.service.SetActivityStatus(ctx, id, &dto.UpdateActivityStatusRequest{
		ActivityStatus: types.ActivityStatusActive,
	})
	s.NoError(err)
	s.Equal(types.ActivityStatusActive, resp.ActivityStatus)

	count, err := s.revStore.CountByBillID(ctx, id)
	s.NoError(err)
	s.Equal(int64(1), count)

	// Flipping it records exactly one revision with the flag change.
	_, err = s.service.SetActivityStatus(ctx, id, &dto.UpdateActivityStatusRequest{
		ActivityStatus: types.ActivityStatusHold,
	})
	s.NoError(err)

	history, err := s.history.GetBillHistory(ctx, id)
	s.NoError(err)
	s.Len(history, 2)
	s.Equal(types.ActivityStatusHold, history[0].ActivityStatus)
	s.Equal(types.ChangeKindModified, history[0].ChangeKind)
}

func (s *BillServiceSuite) TestCloneBill() {
	ctx := testutil.SetupContext("user_planner1")
	source, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)

	// Advance the source so the clone's fresh start is observable.
	_, err = s.service.AdvanceToRO(ctx, source.ID, &dto.StageActionRequest{})
	s.NoError(err)

	clone, err := s.service.CloneBill(ctx, source.ID, &dto.CloneBillRequest{
		ExecutiveName:      "Asha Rao",
		ClientName:         "Meridian Logistics",
		BillStartDate:      source.BillStartDate.AddDate(0, 1, 0),
		BillEndDate:        source.BillEndDate.AddDate(0, 1, 0),
		BookingOrderNumber: "BO-2026-002",
	})
	s.NoError(err)
	s.NotEqual(source.ID, clone.ID)
	s.Equal(types.BillWorkflowStatusRaised, clone.WorkflowStatus)
	s.Equal(types.ActivityStatusActive, clone.ActivityStatus)
	// No new upload: the work order reference is carried over by value.
	s.Equal(source.WorkOrderAttachment, clone.WorkOrderAttachment)
	s.Empty(clone.ROAttachment)
	s.Contains(clone.Remarks, source.ID)

	// The clone starts its own history.
	history, err := s.history.GetBillHistory(ctx, clone.ID)
	s.NoError(err)
	s.Len(history, 1)
	s.Equal(types.ChangeKindCreated, history[0].ChangeKind)
}

func (s *BillServiceSuite) TestCloneBillDuplicateBookingOrderNumber() {
	ctx := testutil.SetupContext("user_planner1")
	source, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)

	_, err = s.service.CloneBill(ctx, source.ID, &dto.CloneBillRequest{
		ExecutiveName:      "Asha Rao",
		ClientName:         "Meridian Logistics",
		BillStartDate:      source.BillStartDate,
		BillEndDate:        source.BillEndDate,
		BookingOrderNumber: "BO-2026-001",
	})
	s.True(ierr.IsAlreadyExists(err))
}

func (s *BillServiceSuite) TestCloneBillSourceNotFound() {
	ctx := testutil.SetupContext("user_planner1")

	_, err := s.service.CloneBill(ctx, "bill_missing", &dto.CloneBillRequest{
		ExecutiveName:      "Asha Rao",
		ClientName:         "Meridian Logistics",
		BillStartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		BillEndDate:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		BookingOrderNumber: "BO-2026-002",
	})
	s.True(ierr.IsNotFound(err))
}

func (s *BillServiceSuite) TestEarlierStageEditKeepsLaterSlots() {
	ctx := testutil.SetupContext("user_planner1")
	resp, err := s.service.RaiseBill(ctx, s.raiseRequest("BO-2026-001"))
	s.NoError(err)
	id := resp.ID

	_, err = s.service.AdvanceToRO(ctx, id, &dto.StageActionRequest{AttachmentRef: "atRO11RO22_ro.pdf"})
	s.NoError(err)

	resp, err = s.service.RejectRO(ctx, id, &dto.RejectBillRequest{Remarks: "amount mismatch"})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusRORejected, resp.WorkflowStatus)

	// Correcting the RO overwrites only its own slot and remarks.
	resp, err = s.service.CorrectRO(ctx, id, &dto.StageActionRequest{
		Remarks:       "amount fixed",
		AttachmentRef: "atRO33RO44_ro_v2.pdf",
	})
	s.NoError(err)
	s.Equal(types.BillWorkflowStatusROCreated, resp.WorkflowStatus)
	s.Equal("atRO33RO44_ro_v2.pdf", resp.ROAttachment)
	s.Equal("atAB12CD34_work_order.pdf", resp.WorkOrderAttachment)
	s.Equal("amount fixed", resp.Remarks)
}

func (s *BillServiceSuite) TestGetBillNotFound() {
	ctx := testutil.SetupContext("user_planner1")

	_, err := s.service.GetBill(ctx, "bill_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *BillServiceSuite) TestListBills() {
	ctx := testutil.SetupContext("user_planner1")

	for _, number := range []string{"BO-2026-001", "BO-2026-002", "BO-2026-003"} {
		_, err := s.service.RaiseBill(ctx, s.raiseRequest(number))
		s.NoError(err)
	}

	resp, err := s.service.ListBills(ctx, nil)
	s.NoError(err)
	s.Equal(int64(3), resp.Total)
	s.Len(resp.Items, 3)

	status := types.BillWorkflowStatusROCreated
	resp, err = s.service.ListBills(ctx, &types.BillFilter{WorkflowStatus: &status})
	s.NoError(err)
	s.Equal(int64(0), resp.Total)
	s.Empty(resp.Items)
}
