package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/api/dto"
	"github.com/ThotaNithin79/Billing-Application/internal/cache"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/samber/lo"
)

const billCacheExpiry = 5 * time.Minute

// BillService drives the bill approval workflow: it creates bills, applies
// stage transitions under the activity gate, and records one revision snapshot
// per accepted mutation, atomically with the live-record write.
type BillService interface {
	RaiseBill(ctx context.Context, req *dto.RaiseBillRequest) (*dto.BillResponse, error)
	CorrectByPlanner(ctx context.Context, id string, req *dto.PlannerUpdateRequest) (*dto.BillResponse, error)
	CloneBill(ctx context.Context, sourceID string, req *dto.CloneBillRequest) (*dto.BillResponse, error)

	AdvanceToRO(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error)
	CorrectRO(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error)
	AdvanceToInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error)
	CorrectInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error)
	AdvanceToEInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error)
	CorrectEInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error)

	RejectRaisedBill(ctx context.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error)
	RejectRO(ctx context.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error)
	RejectInvoice(ctx context.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error)

	SetActivityStatus(ctx context.Context, id string, req *dto.UpdateActivityStatusRequest) (*dto.BillResponse, error)

	GetBill(ctx context.Context, id string) (*dto.BillResponse, error)
	ListBills(ctx context.Context, filter *types.BillFilter) (*dto.ListBillsResponse, error)
}

type billService struct {
	ServiceParams
}

func NewBillService(params ServiceParams) BillService {
	return &billService{ServiceParams: params}
}

func (s *billService) RaiseBill(ctx context.Context, req *dto.RaiseBillRequest) (*dto.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b := req.ToBill(ctx)
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := s.BillRepo.ExistsByBookingOrderNumber(txCtx, b.BookingOrderNumber)
		if err != nil {
			return err
		}
		if exists {
			return ierr.NewErrorf("booking order number %s is already in use", b.BookingOrderNumber).
				WithHint("A bill with this booking order number already exists").
				WithReportableDetails(map[string]any{"booking_order_number": b.BookingOrderNumber}).
				Mark(ierr.ErrAlreadyExists)
		}
		if err := s.BillRepo.Create(txCtx, b); err != nil {
			return err
		}
		return s.RevisionRepo.Create(txCtx, revision.NewFromBill(b, types.GetActorID(ctx), types.ChangeKindCreated))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("bill raised", "bill_id", b.ID, "booking_order_number", b.BookingOrderNumber)
	return dto.NewBillResponse(b), nil
}

func (s *billService) CorrectByPlanner(ctx context.Context, id string, req *dto.PlannerUpdateRequest) (*dto.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.transition(ctx, id, types.WorkflowOpCorrectRaise, func(b *bill.Bill) error {
		b.ExecutiveName = req.ExecutiveName
		b.ClientName = req.ClientName
		b.BillStartDate = req.BillStartDate
		b.BillEndDate = req.BillEndDate
		b.BookingOrderNumber = req.BookingOrderNumber
		b.WorkOrderNumber = req.WorkOrderNumber
		b.Remarks = req.Remarks
		if req.WorkOrderAttachment != "" {
			b.SetAttachment(types.AttachmentStageWorkOrder, req.WorkOrderAttachment)
		}
		return nil
	})
}

// CloneBill creates a fresh bill seeded from an existing one. The clone starts
// the workflow over at RAISED/ACTIVE with an empty revision history of its own;
// when no new work order is uploaded the source's attachment reference is
// copied by value, so the two bills share the stored object but not the slot.
func (s *billService) CloneBill(ctx context.Context, sourceID string, req *dto.CloneBillRequest) (*dto.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var clone *bill.Bill
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		source, err := s.BillRepo.GetByID(txCtx, sourceID)
		if err != nil {
			return err
		}
		exists, err := s.BillRepo.ExistsByBookingOrderNumber(txCtx, req.BookingOrderNumber)
		if err != nil {
			return err
		}
		if exists {
			return ierr.NewErrorf("booking order number %s is already in use", req.BookingOrderNumber).
				WithHint("A bill with this booking order number already exists").
				WithReportableDetails(map[string]any{"booking_order_number": req.BookingOrderNumber}).
				Mark(ierr.ErrAlreadyExists)
		}

		clone = bill.NewBill(txCtx)
		clone.ExecutiveName = req.ExecutiveName
		clone.ClientName = req.ClientName
		clone.BillStartDate = req.BillStartDate
		clone.BillEndDate = req.BillEndDate
		clone.BookingOrderNumber = req.BookingOrderNumber
		clone.WorkOrderNumber = req.WorkOrderNumber
		clone.WorkOrderAttachment = req.WorkOrderAttachment
		if clone.WorkOrderAttachment == "" {
			clone.WorkOrderAttachment = source.WorkOrderAttachment
		}
		clone.Remarks = fmt.Sprintf("Cloned from bill %s", source.ID)

		if err := s.BillRepo.Create(txCtx, clone); err != nil {
			return err
		}
		return s.RevisionRepo.Create(txCtx, revision.NewFromBill(clone, types.GetActorID(ctx), types.ChangeKindCreated))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("bill cloned", "source_bill_id", sourceID, "bill_id", clone.ID)
	return dto.NewBillResponse(clone), nil
}

func (s *billService) AdvanceToRO(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
	return s.stageAction(ctx, id, types.WorkflowOpAdvanceToRO, types.AttachmentStageRO, req)
}

func (s *billService) CorrectRO(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
	return s.stageAction(ctx, id, types.WorkflowOpCorrectRO, types.AttachmentStageRO, req)
}

func (s *billService) AdvanceToInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
	return s.stageAction(ctx, id, types.WorkflowOpAdvanceToInvoice, types.AttachmentStageInvoice, req)
}

func (s *billService) CorrectInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
	return s.stageAction(ctx, id, types.WorkflowOpCorrectInvoice, types.AttachmentStageInvoice, req)
}

func (s *billService) AdvanceToEInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
	return s.stageAction(ctx, id, types.WorkflowOpAdvanceToEInvoice, types.AttachmentStageEInvoice, req)
}

func (s *billService) CorrectEInvoice(ctx context.Context, id string, req *dto.StageActionRequest) (*dto.BillResponse, error) {
	return s.stageAction(ctx, id, types.WorkflowOpCorrectEInvoice, types.AttachmentStageEInvoice, req)
}

func (s *billService) RejectRaisedBill(ctx context.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error) {
	return s.reject(ctx, id, types.WorkflowOpRejectRaise, req)
}

func (s *billService) RejectRO(ctx context.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error) {
	return s.reject(ctx, id, types.WorkflowOpRejectRO, req)
}

func (s *billService) RejectInvoice(ctx context.Context, id string, req *dto.RejectBillRequest) (*dto.BillResponse, error) {
	return s.reject(ctx, id, types.WorkflowOpRejectInvoice, req)
}

// SetActivityStatus toggles the ACTIVE/HOLD gate. It ignores the gate itself
// (releasing a held bill must be possible), never touches the workflow stage,
// and is an idempotent no-op when the flag already has the requested value:
// no write, no revision.
func (s *billService) SetActivityStatus(ctx context.Context, id string, req *dto.UpdateActivityStatusRequest) (*dto.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result *bill.Bill
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		b, err := s.BillRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if b.ActivityStatus == req.ActivityStatus {
			result = b
			return nil
		}

		b.ActivityStatus = req.ActivityStatus
		b.UpdatedAt = time.Now().UTC()
		if err := s.BillRepo.Update(txCtx, b); err != nil {
			return err
		}
		if err := s.RevisionRepo.Create(txCtx, revision.NewFromBill(b, types.GetActorID(ctx), types.ChangeKindModified)); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.Key(cache.PrefixBill, id))
	return dto.NewBillResponse(result), nil
}

func (s *billService) GetBill(ctx context.Context, id string) (*dto.BillResponse, error) {
	key := cache.Key(cache.PrefixBill, id)
	if cached, found := s.Cache.Get(ctx, key); found {
		if b, ok := cached.(*bill.Bill); ok {
			return dto.NewBillResponse(b), nil
		}
	}

	b, err := s.BillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, b, billCacheExpiry)
	return dto.NewBillResponse(b), nil
}

func (s *billService) ListBills(ctx context.Context, filter *types.BillFilter) (*dto.ListBillsResponse, error) {
	if filter == nil {
		filter = &types.BillFilter{}
	}

	bills, err := s.BillRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.BillRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListBillsResponse{
		Items: lo.Map(bills, func(b *bill.Bill, _ int) *dto.BillResponse {
			return dto.NewBillResponse(b)
		}),
		Total:  total,
		Limit:  filter.GetLimit(),
		Offset: filter.GetOffset(),
	}, nil
}

// stageAction runs an advance or correct transition, overwriting the stage's
// remarks and, when a new reference was uploaded, its attachment slot.
func (s *billService) stageAction(ctx context.Context, id string, op types.WorkflowOperation, stage types.AttachmentStage, req *dto.StageActionRequest) (*dto.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.transition(ctx, id, op, func(b *bill.Bill) error {
		b.Remarks = req.Remarks
		if req.AttachmentRef != "" {
			b.SetAttachment(stage, req.AttachmentRef)
		}
		return nil
	})
}

func (s *billService) reject(ctx context.Context, id string, op types.WorkflowOperation, req *dto.RejectBillRequest) (*dto.BillResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return s.transition(ctx, id, op, func(b *bill.Bill) error {
		b.Remarks = req.Remarks
		return nil
	})
}

// transition is the single path every workflow mutation takes: lock the row,
// check the activity gate, resolve the target stage from the transition table,
// apply the field changes, then persist the bill and its revision snapshot in
// the same transaction. A failure at any step leaves both untouched.
func (s *billService) transition(ctx context.Context, id string, op types.WorkflowOperation, apply func(b *bill.Bill) error) (*dto.BillResponse, error) {
	var result *bill.Bill
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		b, err := s.BillRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if b.OnHold() {
			return ierr.NewErrorf("bill %s is on hold", id).
				WithHint("The bill is on hold; set it back to ACTIVE first").
				WithReportableDetails(map[string]any{
					"bill_id":   id,
					"operation": op.String(),
				}).
				Mark(ierr.ErrRecordOnHold)
		}

		next, err := bill.NextStage(op, b.WorkflowStatus)
		if err != nil {
			return err
		}
		if err := apply(b); err != nil {
			return err
		}
		b.WorkflowStatus = next
		b.UpdatedAt = time.Now().UTC()

		if err := s.BillRepo.Update(txCtx, b); err != nil {
			return err
		}
		if err := s.RevisionRepo.Create(txCtx, revision.NewFromBill(b, types.GetActorID(ctx), types.ChangeKindModified)); err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.Key(cache.PrefixBill, id))
	s.Logger.Infow("bill transition applied",
		"bill_id", id,
		"operation", op.String(),
		"workflow_status", result.WorkflowStatus.String())
	return dto.NewBillResponse(result), nil
}
