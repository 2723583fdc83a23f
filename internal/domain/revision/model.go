package revision

import (
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

// Revision is one immutable snapshot of a bill plus metadata about who made the
// change, when, and of what kind. Rows are append-only: once written they are
// never updated or removed, and they are retained indefinitely.
//
// Sequence is assigned by the store at insert time from a process-wide
// monotonic counter. Gaps from rolled-back transactions are acceptable;
// duplicates are not.
type Revision struct {
	Sequence   int64            `db:"sequence" json:"sequence"`
	BillID     string           `db:"bill_id" json:"bill_id"`
	Actor      string           `db:"actor" json:"actor"`
	ChangeKind types.ChangeKind `db:"change_kind" json:"change_kind"`
	RecordedAt time.Time        `db:"recorded_at" json:"recorded_at"`

	// Full field snapshot of the bill at the moment of the mutation.
	BookingOrderNumber  string                   `db:"booking_order_number" json:"booking_order_number"`
	ExecutiveName       string                   `db:"executive_name" json:"executive_name"`
	ClientName          string                   `db:"client_name" json:"client_name"`
	BillStartDate       time.Time                `db:"bill_start_date" json:"bill_start_date"`
	BillEndDate         time.Time                `db:"bill_end_date" json:"bill_end_date"`
	WorkOrderNumber     string                   `db:"work_order_number" json:"work_order_number,omitempty"`
	WorkflowStatus      types.BillWorkflowStatus `db:"workflow_status" json:"workflow_status"`
	ActivityStatus      types.ActivityStatus     `db:"activity_status" json:"activity_status"`
	WorkOrderAttachment string                   `db:"work_order_attachment" json:"work_order_attachment,omitempty"`
	ROAttachment        string                   `db:"ro_attachment" json:"ro_attachment,omitempty"`
	InvoiceAttachment   string                   `db:"invoice_attachment" json:"invoice_attachment,omitempty"`
	EInvoiceAttachment  string                   `db:"e_invoice_attachment" json:"e_invoice_attachment,omitempty"`
	Remarks             string                   `db:"remarks" json:"remarks,omitempty"`
	BillCreatedBy       string                   `db:"bill_created_by" json:"bill_created_by"`
	BillCreatedAt       time.Time                `db:"bill_created_at" json:"bill_created_at"`
	BillUpdatedAt       time.Time                `db:"bill_updated_at" json:"bill_updated_at"`
}

// NewFromBill captures the bill's post-mutation field values as a revision
// attributed to the given actor.
func NewFromBill(b *bill.Bill, actor string, kind types.ChangeKind) *Revision {
	return &Revision{
		BillID:              b.ID,
		Actor:               actor,
		ChangeKind:          kind,
		RecordedAt:          time.Now().UTC(),
		BookingOrderNumber:  b.BookingOrderNumber,
		ExecutiveName:       b.ExecutiveName,
		ClientName:          b.ClientName,
		BillStartDate:       b.BillStartDate,
		BillEndDate:         b.BillEndDate,
		WorkOrderNumber:     b.WorkOrderNumber,
		WorkflowStatus:      b.WorkflowStatus,
		ActivityStatus:      b.ActivityStatus,
		WorkOrderAttachment: b.WorkOrderAttachment,
		ROAttachment:        b.ROAttachment,
		InvoiceAttachment:   b.InvoiceAttachment,
		EInvoiceAttachment:  b.EInvoiceAttachment,
		Remarks:             b.Remarks,
		BillCreatedBy:       b.CreatedBy,
		BillCreatedAt:       b.CreatedAt,
		BillUpdatedAt:       b.UpdatedAt,
	}
}
