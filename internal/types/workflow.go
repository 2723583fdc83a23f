package types

import (
	"fmt"

	"github.com/samber/lo"
)

// WorkflowOperation names a bill workflow operation. The legal source stages and
// the resulting stage for each operation live in the bill domain transition table.
type WorkflowOperation string

const (
	WorkflowOpRaise            WorkflowOperation = "raise"
	WorkflowOpCorrectRaise     WorkflowOperation = "correct_raise"
	WorkflowOpRejectRaise      WorkflowOperation = "reject_raise"
	WorkflowOpAdvanceToRO      WorkflowOperation = "advance_to_ro"
	WorkflowOpCorrectRO        WorkflowOperation = "correct_ro"
	WorkflowOpRejectRO         WorkflowOperation = "reject_ro"
	WorkflowOpAdvanceToInvoice WorkflowOperation = "advance_to_invoice"
	WorkflowOpCorrectInvoice   WorkflowOperation = "correct_invoice"
	WorkflowOpRejectInvoice    WorkflowOperation = "reject_invoice"
	WorkflowOpAdvanceToEInvoice WorkflowOperation = "advance_to_einvoice"
	WorkflowOpCorrectEInvoice  WorkflowOperation = "correct_einvoice"
	WorkflowOpSetActivity      WorkflowOperation = "set_activity"
	WorkflowOpClone            WorkflowOperation = "clone"
)

func (o WorkflowOperation) String() string {
	return string(o)
}

func (o WorkflowOperation) Validate() error {
	allowed := []WorkflowOperation{
		WorkflowOpRaise,
		WorkflowOpCorrectRaise,
		WorkflowOpRejectRaise,
		WorkflowOpAdvanceToRO,
		WorkflowOpCorrectRO,
		WorkflowOpRejectRO,
		WorkflowOpAdvanceToInvoice,
		WorkflowOpCorrectInvoice,
		WorkflowOpRejectInvoice,
		WorkflowOpAdvanceToEInvoice,
		WorkflowOpCorrectEInvoice,
		WorkflowOpSetActivity,
		WorkflowOpClone,
	}
	if !lo.Contains(allowed, o) {
		return fmt.Errorf("invalid workflow operation: %s", o)
	}
	return nil
}
