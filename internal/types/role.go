package types

import (
	"fmt"

	"github.com/samber/lo"
)

// Role names the actor roles of the approval workflow. Role gating of endpoints
// is enforced upstream; the roles here exist for actor attribution and for the
// last-guardian safety check on the admin role.
type Role string

const (
	RoleAdmin           Role = "ROLE_ADMIN"
	RolePlanner         Role = "ROLE_PLANNER"
	RoleROCreator       Role = "ROLE_RO_CREATOR"
	RoleInvoiceCreator  Role = "ROLE_INVOICE_CREATOR"
	RoleEInvoiceCreator Role = "ROLE_E_INVOICE_CREATOR"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Validate() error {
	allowed := []Role{
		RoleAdmin,
		RolePlanner,
		RoleROCreator,
		RoleInvoiceCreator,
		RoleEInvoiceCreator,
	}
	if !lo.Contains(allowed, r) {
		return fmt.Errorf("invalid role: %s", r)
	}
	return nil
}
