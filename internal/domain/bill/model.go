package bill

import (
	"context"
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

// Bill is the live, mutable billing record. Every accepted mutation is paired
// with an immutable revision snapshot; the bill itself is never deleted.
type Bill struct {
	ID                 string    `db:"id" json:"id"`
	BookingOrderNumber string    `db:"booking_order_number" json:"booking_order_number"`
	ExecutiveName      string    `db:"executive_name" json:"executive_name"`
	ClientName         string    `db:"client_name" json:"client_name"`
	BillStartDate      time.Time `db:"bill_start_date" json:"bill_start_date"`
	BillEndDate        time.Time `db:"bill_end_date" json:"bill_end_date"`
	WorkOrderNumber    string    `db:"work_order_number" json:"work_order_number,omitempty"`

	WorkflowStatus types.BillWorkflowStatus `db:"workflow_status" json:"workflow_status"`
	ActivityStatus types.ActivityStatus     `db:"activity_status" json:"activity_status"`

	// One attachment reference slot per workflow stage. References are opaque
	// strings produced by the attachment store; a later stage's slot is never
	// cleared by an earlier stage's edits.
	WorkOrderAttachment string `db:"work_order_attachment" json:"work_order_attachment,omitempty"`
	ROAttachment        string `db:"ro_attachment" json:"ro_attachment,omitempty"`
	InvoiceAttachment   string `db:"invoice_attachment" json:"invoice_attachment,omitempty"`
	EInvoiceAttachment  string `db:"e_invoice_attachment" json:"e_invoice_attachment,omitempty"`

	// Remarks holds the latest actor-supplied message; it is overwritten on
	// every mutation, not accumulated.
	Remarks string `db:"remarks" json:"remarks,omitempty"`

	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewBill returns a bill in the initial RAISED/ACTIVE state attributed to the
// actor resolved from the context.
func NewBill(ctx context.Context) *Bill {
	now := time.Now().UTC()
	return &Bill{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BILL),
		WorkflowStatus: types.BillWorkflowStatusRaised,
		ActivityStatus: types.ActivityStatusActive,
		CreatedBy:      types.GetActorID(ctx),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// OnHold reports whether the activity gate blocks workflow mutations.
func (b *Bill) OnHold() bool {
	return b.ActivityStatus == types.ActivityStatusHold
}

// SetAttachment overwrites the reference slot owned by the given stage.
func (b *Bill) SetAttachment(stage types.AttachmentStage, ref string) {
	switch stage {
	case types.AttachmentStageWorkOrder:
		b.WorkOrderAttachment = ref
	case types.AttachmentStageRO:
		b.ROAttachment = ref
	case types.AttachmentStageInvoice:
		b.InvoiceAttachment = ref
	case types.AttachmentStageEInvoice:
		b.EInvoiceAttachment = ref
	}
}
