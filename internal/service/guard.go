package service

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

// SafetyGuard protects a role from losing its last active holder. Any mutation
// that would strip the protected role from a user, or deactivate them, must
// call the guard first and abort on error.
type SafetyGuard struct {
	userRepo  user.Repository
	protected types.Role
}

func NewSafetyGuard(userRepo user.Repository) *SafetyGuard {
	return &SafetyGuard{
		userRepo:  userRepo,
		protected: types.RoleAdmin,
	}
}

// EnsureNotLastHolder returns an error when u is currently the only active
// holder of the protected role. Callers invoke it before applying a change
// that removes the role or deactivates the user; users who do not hold the
// role, or are already inactive, pass trivially.
func (g *SafetyGuard) EnsureNotLastHolder(ctx context.Context, u *user.User) error {
	if !u.Active || !u.HasRole(g.protected) {
		return nil
	}

	count, err := g.userRepo.CountActiveByRole(ctx, g.protected)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ierr.NewErrorf("user %s is the last active holder of %s", u.ID, g.protected).
			WithHint("At least one active admin must remain").
			WithReportableDetails(map[string]any{
				"user_id": u.ID,
				"role":    g.protected.String(),
			}).
			Mark(ierr.ErrLastGuardian)
	}
	return nil
}
