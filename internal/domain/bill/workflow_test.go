package bill

import (
	"testing"

	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNextStage(t *testing.T) {
	tests := []struct {
		name    string
		op      types.WorkflowOperation
		current types.BillWorkflowStatus
		want    types.BillWorkflowStatus
		wantErr bool
	}{
		{
			name:    "advance raised bill to ro",
			op:      types.WorkflowOpAdvanceToRO,
			current: types.BillWorkflowStatusRaised,
			want:    types.BillWorkflowStatusROCreated,
		},
		{
			name:    "advance rejected raise directly to ro",
			op:      types.WorkflowOpAdvanceToRO,
			current: types.BillWorkflowStatusRaiseRejected,
			want:    types.BillWorkflowStatusROCreated,
		},
		{
			name:    "correct rejected raise back to raised",
			op:      types.WorkflowOpCorrectRaise,
			current: types.BillWorkflowStatusRaiseRejected,
			want:    types.BillWorkflowStatusRaised,
		},
		{
			name:    "reject raised bill",
			op:      types.WorkflowOpRejectRaise,
			current: types.BillWorkflowStatusRaised,
			want:    types.BillWorkflowStatusRaiseRejected,
		},
		{
			name:    "reject raise twice",
			op:      types.WorkflowOpRejectRaise,
			current: types.BillWorkflowStatusRaiseRejected,
			wantErr: true,
		},
		{
			name:    "correct ro after rejection",
			op:      types.WorkflowOpCorrectRO,
			current: types.BillWorkflowStatusRORejected,
			want:    types.BillWorkflowStatusROCreated,
		},
		{
			name:    "advance ro to invoice",
			op:      types.WorkflowOpAdvanceToInvoice,
			current: types.BillWorkflowStatusROCreated,
			want:    types.BillWorkflowStatusInvoiceCreated,
		},
		{
			name:    "skip ro stage",
			op:      types.WorkflowOpAdvanceToInvoice,
			current: types.BillWorkflowStatusRaised,
			wantErr: true,
		},
		{
			name:    "advance rejected ro without correction",
			op:      types.WorkflowOpAdvanceToInvoice,
			current: types.BillWorkflowStatusRORejected,
			wantErr: true,
		},
		{
			name:    "advance invoice to e-invoice",
			op:      types.WorkflowOpAdvanceToEInvoice,
			current: types.BillWorkflowStatusInvoiceCreated,
			want:    types.BillWorkflowStatusEInvoiceCreated,
		},
		{
			name:    "correct e-invoice in place",
			op:      types.WorkflowOpCorrectEInvoice,
			current: types.BillWorkflowStatusEInvoiceCreated,
			want:    types.BillWorkflowStatusEInvoiceCreated,
		},
		{
			name:    "no reject path out of e-invoice",
			op:      types.WorkflowOpRejectInvoice,
			current: types.BillWorkflowStatusEInvoiceCreated,
			wantErr: true,
		},
		{
			name:    "go backwards from invoice to ro",
			op:      types.WorkflowOpAdvanceToRO,
			current: types.BillWorkflowStatusInvoiceCreated,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStage(tt.op, tt.current)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, ierr.IsInvalidTransition(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStageUnknownOperation(t *testing.T) {
	// set_activity and clone are not stage transitions at all.
	_, err := NextStage(types.WorkflowOpSetActivity, types.BillWorkflowStatusRaised)
	assert.True(t, ierr.IsInvalidOperation(err))

	_, err = NextStage(types.WorkflowOpClone, types.BillWorkflowStatusRaised)
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestAllowedSourceStages(t *testing.T) {
	from, ok := AllowedSourceStages(types.WorkflowOpCorrectRaise)
	assert.True(t, ok)
	assert.ElementsMatch(t, []types.BillWorkflowStatus{
		types.BillWorkflowStatusRaised,
		types.BillWorkflowStatusRaiseRejected,
	}, from)

	_, ok = AllowedSourceStages(types.WorkflowOpRaise)
	assert.False(t, ok)
}
