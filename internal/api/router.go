package api

import (
	v1 "github.com/ThotaNithin79/Billing-Application/internal/api/v1"
	"github.com/ThotaNithin79/Billing-Application/internal/config"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/rest/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health *v1.HealthHandler
	Bill   *v1.BillHandler
	User   *v1.UserHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	router := gin.Default()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/v1")
	public.GET("/health", handlers.Health.Health)

	// Authentication resolves the actor identity for revision attribution.
	// Role-based gating of individual endpoints is the gateway's concern.
	private := router.Group("/v1")
	private.Use(middleware.AuthenticateMiddleware(cfg, logger))
	registerBillRoutes(private, handlers)
	registerUserRoutes(private, handlers)

	return router
}

func registerBillRoutes(router *gin.RouterGroup, handlers Handlers) {
	bills := router.Group("/bills")
	{
		bills.POST("", handlers.Bill.CreateBill)
		bills.GET("", handlers.Bill.ListBills)
		bills.GET("/:id", handlers.Bill.GetBill)
		bills.GET("/:id/detailed-history", handlers.Bill.GetDetailedHistory)

		bills.PUT("/:id/planner-update", handlers.Bill.UpdateByPlanner)
		bills.POST("/:id/clone", handlers.Bill.CloneBill)

		bills.PATCH("/:id/ro-create", handlers.Bill.CreateRO)
		bills.PATCH("/:id/ro-update", handlers.Bill.UpdateRO)
		bills.PATCH("/:id/invoice-create", handlers.Bill.CreateInvoice)
		bills.PATCH("/:id/invoice-update", handlers.Bill.UpdateInvoice)
		bills.PATCH("/:id/e-invoice-create", handlers.Bill.CreateEInvoice)
		bills.PATCH("/:id/e-invoice-update", handlers.Bill.UpdateEInvoice)

		bills.PATCH("/:id/reject-bill", handlers.Bill.RejectBill)
		bills.PATCH("/:id/reject-ro", handlers.Bill.RejectRO)
		bills.PATCH("/:id/reject-invoice", handlers.Bill.RejectInvoice)

		bills.PATCH("/:id/status", handlers.Bill.UpdateActivityStatus)
	}
}

func registerUserRoutes(router *gin.RouterGroup, handlers Handlers) {
	users := router.Group("/admin/users")
	{
		users.POST("", handlers.User.CreateUser)
		users.GET("", handlers.User.ListUsers)
		users.GET("/:id", handlers.User.GetUser)
		users.PUT("/:id/roles", handlers.User.UpdateUserRoles)
		users.PATCH("/:id/toggle-status", handlers.User.ToggleUserStatus)
	}
}
