package types

import (
	"fmt"

	"github.com/samber/lo"
)

// BillWorkflowStatus represents the position of a bill in the approval workflow.
// RAISED is the only initial status; EINVOICE_CREATED is the finalization stage and
// deliberately has no rejected counterpart (there is no reviewer after e-invoicing).
type BillWorkflowStatus string

const (
	BillWorkflowStatusRaised          BillWorkflowStatus = "RAISED"
	BillWorkflowStatusRaiseRejected   BillWorkflowStatus = "RAISE_REJECTED"
	BillWorkflowStatusROCreated       BillWorkflowStatus = "RO_CREATED"
	BillWorkflowStatusRORejected      BillWorkflowStatus = "RO_REJECTED"
	BillWorkflowStatusInvoiceCreated  BillWorkflowStatus = "INVOICE_CREATED"
	BillWorkflowStatusInvoiceRejected BillWorkflowStatus = "INVOICE_REJECTED"
	BillWorkflowStatusEInvoiceCreated BillWorkflowStatus = "EINVOICE_CREATED"
)

func (s BillWorkflowStatus) String() string {
	return string(s)
}

func (s BillWorkflowStatus) Validate() error {
	allowed := []BillWorkflowStatus{
		BillWorkflowStatusRaised,
		BillWorkflowStatusRaiseRejected,
		BillWorkflowStatusROCreated,
		BillWorkflowStatusRORejected,
		BillWorkflowStatusInvoiceCreated,
		BillWorkflowStatusInvoiceRejected,
		BillWorkflowStatusEInvoiceCreated,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid bill workflow status: %s", s)
	}
	return nil
}

// ActivityStatus is the ACTIVE/HOLD gate on a bill. HOLD blocks every workflow
// operation except the activity toggle itself.
type ActivityStatus string

const (
	ActivityStatusActive ActivityStatus = "ACTIVE"
	ActivityStatusHold   ActivityStatus = "HOLD"
)

func (s ActivityStatus) String() string {
	return string(s)
}

func (s ActivityStatus) Validate() error {
	allowed := []ActivityStatus{
		ActivityStatusActive,
		ActivityStatusHold,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid activity status: %s", s)
	}
	return nil
}

// ChangeKind tags a revision with the kind of mutation that produced it.
// DELETED is carried for completeness of the taxonomy; no operation currently
// deletes a bill (removal is modeled as a HOLD).
type ChangeKind string

const (
	ChangeKindCreated  ChangeKind = "CREATED"
	ChangeKindModified ChangeKind = "MODIFIED"
	ChangeKindDeleted  ChangeKind = "DELETED"
)

func (k ChangeKind) String() string {
	return string(k)
}

func (k ChangeKind) Validate() error {
	allowed := []ChangeKind{
		ChangeKindCreated,
		ChangeKindModified,
		ChangeKindDeleted,
	}
	if !lo.Contains(allowed, k) {
		return fmt.Errorf("invalid change kind: %s", k)
	}
	return nil
}

// AttachmentStage names the per-stage attachment slot an upload belongs to.
type AttachmentStage string

const (
	AttachmentStageWorkOrder AttachmentStage = "work_orders"
	AttachmentStageRO        AttachmentStage = "ro_attachments"
	AttachmentStageInvoice   AttachmentStage = "invoice_attachments"
	AttachmentStageEInvoice  AttachmentStage = "e_invoice_attachments"
)

func (s AttachmentStage) String() string {
	return string(s)
}

func (s AttachmentStage) Validate() error {
	allowed := []AttachmentStage{
		AttachmentStageWorkOrder,
		AttachmentStageRO,
		AttachmentStageInvoice,
		AttachmentStageEInvoice,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid attachment stage: %s", s)
	}
	return nil
}

// BillFilter represents the filter for listing bills
type BillFilter struct {
	WorkflowStatus *BillWorkflowStatus `form:"workflow_status"`
	ActivityStatus *ActivityStatus     `form:"activity_status"`
	ClientName     *string             `form:"client_name"`
	Limit          int                 `form:"limit"`
	Offset         int                 `form:"offset"`
}

func (f *BillFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.WorkflowStatus != nil {
		if err := f.WorkflowStatus.Validate(); err != nil {
			return err
		}
	}
	if f.ActivityStatus != nil {
		if err := f.ActivityStatus.Validate(); err != nil {
			return err
		}
	}
	if f.Limit < 0 || f.Offset < 0 {
		return fmt.Errorf("limit and offset must be non-negative")
	}
	return nil
}

func (f *BillFilter) GetLimit() int {
	if f == nil || f.Limit == 0 {
		return 50
	}
	return f.Limit
}

func (f *BillFilter) GetOffset() int {
	if f == nil {
		return 0
	}
	return f.Offset
}
