package dto

import (
	"context"
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/ThotaNithin79/Billing-Application/internal/validator"
)

type RaiseBillRequest struct {
	ExecutiveName      string    `json:"executive_name" form:"executive_name" validate:"required"`
	ClientName         string    `json:"client_name" form:"client_name" validate:"required"`
	BillStartDate      time.Time `json:"bill_start_date" form:"bill_start_date" time_format:"2006-01-02" validate:"required"`
	BillEndDate        time.Time `json:"bill_end_date" form:"bill_end_date" time_format:"2006-01-02" validate:"required"`
	BookingOrderNumber string    `json:"booking_order_number" form:"booking_order_number" validate:"required"`
	WorkOrderNumber    string    `json:"work_order_number" form:"work_order_number"`
	Remarks            string    `json:"remarks" form:"remarks"`
	// WorkOrderAttachment is the opaque reference produced by the attachment
	// store for the uploaded work order, if any.
	WorkOrderAttachment string `json:"work_order_attachment"`
}

func (r *RaiseBillRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillEndDate.Before(r.BillStartDate) {
		return ierr.NewError("bill end date precedes start date").
			WithHint("Bill end date must not precede the start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *RaiseBillRequest) ToBill(ctx context.Context) *bill.Bill {
	b := bill.NewBill(ctx)
	b.ExecutiveName = r.ExecutiveName
	b.ClientName = r.ClientName
	b.BillStartDate = r.BillStartDate
	b.BillEndDate = r.BillEndDate
	b.BookingOrderNumber = r.BookingOrderNumber
	b.WorkOrderNumber = r.WorkOrderNumber
	b.Remarks = r.Remarks
	b.WorkOrderAttachment = r.WorkOrderAttachment
	return b
}

type PlannerUpdateRequest struct {
	ExecutiveName      string    `json:"executive_name" form:"executive_name" validate:"required"`
	ClientName         string    `json:"client_name" form:"client_name" validate:"required"`
	BillStartDate      time.Time `json:"bill_start_date" form:"bill_start_date" time_format:"2006-01-02" validate:"required"`
	BillEndDate        time.Time `json:"bill_end_date" form:"bill_end_date" time_format:"2006-01-02" validate:"required"`
	BookingOrderNumber string    `json:"booking_order_number" form:"booking_order_number" validate:"required"`
	WorkOrderNumber    string    `json:"work_order_number" form:"work_order_number"`
	Remarks            string    `json:"remarks" form:"remarks"`
	// WorkOrderAttachment, when set, overwrites the raise-stage slot.
	WorkOrderAttachment string `json:"work_order_attachment"`
}

func (r *PlannerUpdateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillEndDate.Before(r.BillStartDate) {
		return ierr.NewError("bill end date precedes start date").
			WithHint("Bill end date must not precede the start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type CloneBillRequest struct {
	ExecutiveName      string    `json:"executive_name" form:"executive_name" validate:"required"`
	ClientName         string    `json:"client_name" form:"client_name" validate:"required"`
	BillStartDate      time.Time `json:"bill_start_date" form:"bill_start_date" time_format:"2006-01-02" validate:"required"`
	BillEndDate        time.Time `json:"bill_end_date" form:"bill_end_date" time_format:"2006-01-02" validate:"required"`
	BookingOrderNumber string    `json:"booking_order_number" form:"booking_order_number" validate:"required"`
	WorkOrderNumber    string    `json:"work_order_number" form:"work_order_number"`
	// WorkOrderAttachment, when empty, is copied by value from the source
	// bill at clone time.
	WorkOrderAttachment string `json:"work_order_attachment"`
}

func (r *CloneBillRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillEndDate.Before(r.BillStartDate) {
		return ierr.NewError("bill end date precedes start date").
			WithHint("Bill end date must not precede the start date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// StageActionRequest carries the inputs of an advance or correct operation:
// the actor's message and, optionally, a fresh attachment reference for the
// stage's own slot.
type StageActionRequest struct {
	Remarks       string `json:"remarks" form:"remarks"`
	AttachmentRef string `json:"attachment_ref"`
}

func (r *StageActionRequest) Validate() error {
	return nil
}

type RejectBillRequest struct {
	Remarks string `json:"remarks" form:"remarks" validate:"required"`
}

func (r *RejectBillRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return nil
}

type UpdateActivityStatusRequest struct {
	ActivityStatus types.ActivityStatus `json:"activity_status" validate:"required"`
}

func (r *UpdateActivityStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.ActivityStatus.Validate(); err != nil {
		return ierr.WithError(err).
			WithHint("Activity status must be ACTIVE or HOLD").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type BillResponse struct {
	*bill.Bill
}

func NewBillResponse(b *bill.Bill) *BillResponse {
	return &BillResponse{Bill: b}
}

type ListBillsResponse struct {
	Items  []*BillResponse `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// BillHistoryEntryResponse is one row of a bill's point-in-time history:
// revision metadata joined with the full field snapshot.
type BillHistoryEntryResponse struct {
	Sequence   int64            `json:"sequence"`
	Actor      string           `json:"actor"`
	RecordedAt time.Time        `json:"recorded_at"`
	ChangeKind types.ChangeKind `json:"change_kind"`

	BillID              string                   `json:"bill_id"`
	BookingOrderNumber  string                   `json:"booking_order_number"`
	ExecutiveName       string                   `json:"executive_name"`
	ClientName          string                   `json:"client_name"`
	BillStartDate       time.Time                `json:"bill_start_date"`
	BillEndDate         time.Time                `json:"bill_end_date"`
	WorkOrderNumber     string                   `json:"work_order_number,omitempty"`
	WorkflowStatus      types.BillWorkflowStatus `json:"workflow_status"`
	ActivityStatus      types.ActivityStatus     `json:"activity_status"`
	WorkOrderAttachment string                   `json:"work_order_attachment,omitempty"`
	ROAttachment        string                   `json:"ro_attachment,omitempty"`
	InvoiceAttachment   string                   `json:"invoice_attachment,omitempty"`
	EInvoiceAttachment  string                   `json:"e_invoice_attachment,omitempty"`
	Remarks             string                   `json:"remarks,omitempty"`
}

func NewBillHistoryEntryResponse(rev *revision.Revision) *BillHistoryEntryResponse {
	return &BillHistoryEntryResponse{
		Sequence:            rev.Sequence,
		Actor:               rev.Actor,
		RecordedAt:          rev.RecordedAt,
		ChangeKind:          rev.ChangeKind,
		BillID:              rev.BillID,
		BookingOrderNumber:  rev.BookingOrderNumber,
		ExecutiveName:       rev.ExecutiveName,
		ClientName:          rev.ClientName,
		BillStartDate:       rev.BillStartDate,
		BillEndDate:         rev.BillEndDate,
		WorkOrderNumber:     rev.WorkOrderNumber,
		WorkflowStatus:      rev.WorkflowStatus,
		ActivityStatus:      rev.ActivityStatus,
		WorkOrderAttachment: rev.WorkOrderAttachment,
		ROAttachment:        rev.ROAttachment,
		InvoiceAttachment:   rev.InvoiceAttachment,
		EInvoiceAttachment:  rev.EInvoiceAttachment,
		Remarks:             rev.Remarks,
	}
}
