package service

import (
	"github.com/ThotaNithin79/Billing-Application/internal/cache"
	"github.com/ThotaNithin79/Billing-Application/internal/config"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/postgres"
)

// ServiceParams bundles the dependencies shared by all services.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	BillRepo     bill.Repository
	RevisionRepo revision.Repository
	UserRepo     user.Repository

	Cache cache.Cache
}
