package bill

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

type Repository interface {
	Create(ctx context.Context, bill *Bill) error
	GetByID(ctx context.Context, id string) (*Bill, error)
	// GetByIDForUpdate locks the bill row for the lifetime of the surrounding
	// transaction so that concurrent transitions on the same bill serialize.
	GetByIDForUpdate(ctx context.Context, id string) (*Bill, error)
	Update(ctx context.Context, bill *Bill) error
	ExistsByBookingOrderNumber(ctx context.Context, bookingOrderNumber string) (bool, error)
	List(ctx context.Context, filter *types.BillFilter) ([]*Bill, error)
	Count(ctx context.Context, filter *types.BillFilter) (int64, error)
}
