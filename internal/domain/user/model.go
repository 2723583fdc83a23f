package user

import (
	"context"
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

// User is an identity that actions in the workflow are attributed to.
// Credentials live in the external auth service; this record carries only the
// profile, role set, and active flag.
type User struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Email     string         `db:"email" json:"email"`
	Active    bool           `db:"active" json:"active"`
	Roles     pq.StringArray `db:"roles" json:"roles"`
	CreatedBy string         `db:"created_by" json:"created_by"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

func NewUser(ctx context.Context, name, email string, roles []string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:      name,
		Email:     email,
		Active:    true,
		Roles:     pq.StringArray(roles),
		CreatedBy: types.GetActorID(ctx),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasRole reports whether the user currently holds the given role.
func (u *User) HasRole(role types.Role) bool {
	return lo.Contains([]string(u.Roles), role.String())
}
