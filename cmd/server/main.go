package main

import (
	"context"
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/api"
	v1 "github.com/ThotaNithin79/Billing-Application/internal/api/v1"
	"github.com/ThotaNithin79/Billing-Application/internal/cache"
	"github.com/ThotaNithin79/Billing-Application/internal/config"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/bill"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/revision"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/postgres"
	"github.com/ThotaNithin79/Billing-Application/internal/repository"
	"github.com/ThotaNithin79/Billing-Application/internal/s3"
	"github.com/ThotaNithin79/Billing-Application/internal/service"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Billing Application API
// @version 1.0
// @description Multi-party bill approval workflow with revision history
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,
			providePostgresClient,

			// Cache
			cache.NewInMemoryCache,

			// Attachment storage
			s3.NewService,

			// Repositories
			repository.NewBillRepository,
			repository.NewRevisionRepository,
			repository.NewUserRepository,

			// Services
			provideServiceParams,
			service.NewBillService,
			service.NewHistoryService,
			service.NewUserService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)
	app.Run()
}

func providePostgresClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideServiceParams(
	logger *logger.Logger,
	cfg *config.Configuration,
	client postgres.IClient,
	billRepo bill.Repository,
	revisionRepo revision.Repository,
	userRepo user.Repository,
	cacheStore cache.Cache,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:       logger,
		Config:       cfg,
		DB:           client,
		BillRepo:     billRepo,
		RevisionRepo: revisionRepo,
		UserRepo:     userRepo,
		Cache:        cacheStore,
	}
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	billService service.BillService,
	historyService service.HistoryService,
	userService service.UserService,
	attachments s3.Service,
) api.Handlers {
	return api.Handlers{
		Health: v1.NewHealthHandler(logger),
		Bill:   v1.NewBillHandler(billService, historyService, attachments, logger),
		User:   v1.NewUserHandler(userService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
