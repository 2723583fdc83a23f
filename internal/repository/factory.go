package repository

import (
	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/postgres"
	postgresRepo "github.com/ThotaNithin79/Billing-Application/internal/repository/postgres"
)

func NewBillRepository(db *postgres.DB, logger *logger.Logger) bill.Repository {
	return postgresRepo.NewBillRepository(db, logger)
}

func NewRevisionRepository(db *postgres.DB, logger *logger.Logger) revision.Repository {
	return postgresRepo.NewRevisionRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}
