package user

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context) ([]*User, error)
	// CountActiveByRole counts active users currently holding the role; the
	// last-guardian safety check depends on it.
	CountActiveByRole(ctx context.Context, role types.Role) (int64, error)
}
