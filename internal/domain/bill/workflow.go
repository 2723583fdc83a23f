package bill

import (
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/samber/lo"
)

// transition describes one row of the workflow transition table: the stages an
// operation may start from and the stage it lands on.
type transition struct {
	From []types.BillWorkflowStatus
	To   types.BillWorkflowStatus
}

// transitionTable is the authoritative stage transition table. raise and clone
// are absent: they create fresh records and have no source stage. set_activity
// is absent: it only toggles the activity gate and never changes the stage.
// There is deliberately no reject path out of EINVOICE_CREATED; e-invoicing is
// the finalization step with no downstream reviewer.
var transitionTable = map[types.WorkflowOperation]transition{
	types.WorkflowOpCorrectRaise: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusRaised, types.BillWorkflowStatusRaiseRejected},
		To:   types.BillWorkflowStatusRaised,
	},
	types.WorkflowOpRejectRaise: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusRaised},
		To:   types.BillWorkflowStatusRaiseRejected,
	},
	types.WorkflowOpAdvanceToRO: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusRaised, types.BillWorkflowStatusRaiseRejected},
		To:   types.BillWorkflowStatusROCreated,
	},
	types.WorkflowOpCorrectRO: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusROCreated, types.BillWorkflowStatusRORejected},
		To:   types.BillWorkflowStatusROCreated,
	},
	types.WorkflowOpRejectRO: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusROCreated},
		To:   types.BillWorkflowStatusRORejected,
	},
	types.WorkflowOpAdvanceToInvoice: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusROCreated},
		To:   types.BillWorkflowStatusInvoiceCreated,
	},
	types.WorkflowOpCorrectInvoice: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusInvoiceCreated, types.BillWorkflowStatusInvoiceRejected},
		To:   types.BillWorkflowStatusInvoiceCreated,
	},
	types.WorkflowOpRejectInvoice: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusInvoiceCreated},
		To:   types.BillWorkflowStatusInvoiceRejected,
	},
	types.WorkflowOpAdvanceToEInvoice: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusInvoiceCreated},
		To:   types.BillWorkflowStatusEInvoiceCreated,
	},
	types.WorkflowOpCorrectEInvoice: {
		From: []types.BillWorkflowStatus{types.BillWorkflowStatusEInvoiceCreated},
		To:   types.BillWorkflowStatusEInvoiceCreated,
	},
}

// AllowedSourceStages returns the stages an operation may legally start from,
// or false when the operation has no table row (raise, clone, set_activity).
func AllowedSourceStages(op types.WorkflowOperation) ([]types.BillWorkflowStatus, bool) {
	t, ok := transitionTable[op]
	if !ok {
		return nil, false
	}
	return t.From, true
}

// NextStage resolves the stage the operation lands on when applied to the
// current stage. An illegal (operation, stage) pair yields an
// invalid-transition error naming both.
func NextStage(op types.WorkflowOperation, current types.BillWorkflowStatus) (types.BillWorkflowStatus, error) {
	t, ok := transitionTable[op]
	if !ok {
		return "", ierr.NewErrorf("operation %s has no workflow transition", op).
			WithHintf("Operation %s cannot be applied as a stage transition", op).
			Mark(ierr.ErrInvalidOperation)
	}
	if !lo.Contains(t.From, current) {
		return "", ierr.NewErrorf("operation %s is not legal from workflow status %s", op, current).
			WithHintf("Cannot perform %s while the bill is in %s", op, current).
			WithReportableDetails(map[string]any{
				"operation":       op.String(),
				"workflow_status": current.String(),
			}).
			Mark(ierr.ErrInvalidTransition)
	}
	return t.To, nil
}
