package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/query"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	RecordMovement    *ledger.RecordMovementUseCase
	TransactionQuery  *query.TransactionQueryUseCase
	DashboardUC       *analytics.DashboardUseCase
	ProductUC         *usecase.ProductUseCase
	UserUC            *usecase.UserUseCase
	StorageUC         *usecase.StorageUseCase
	JWTSecret         string
	LowStockThreshold decimal.Decimal
}

// Router registra las rutas de la API. Cada grupo protegido lleva el
// middleware de permiso de su operación; los casos de uso vuelven a validar
// la política con el actor explícito.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Movimientos de stock (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.RecordMovement)
	stock.Post("/in", RequirePermission(policy.OpStockIn), stockHandler.StockIn)
	stock.Post("/in/batch", RequirePermission(policy.OpStockIn), stockHandler.StockInBatch)
	stock.Post("/out", RequirePermission(policy.OpStockOut), stockHandler.StockOut)
	stock.Post("/out/batch", RequirePermission(policy.OpStockOut), stockHandler.StockOutBatch)

	// Ledger (protegido)
	transactions := protected.Group("/transactions", RequirePermission(policy.OpTransactionQuery))
	transactionHandler := NewTransactionHandler(deps.TransactionQuery)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/user/:id", transactionHandler.ListForUser)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard", RequirePermission(policy.OpDashboardView))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/monthly", dashboardHandler.Monthly)
	dashboard.Get("/analytics", dashboardHandler.Analytics)

	// Products (protegido; lecturas y escrituras con permisos distintos)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LowStockThreshold)
	products.Post("/", RequirePermission(policy.OpProductWrite), productHandler.Create)
	products.Get("/", RequirePermission(policy.OpProductRead), productHandler.List)
	products.Get("/low-stock", RequirePermission(policy.OpProductRead), productHandler.ListLowStock)
	products.Get("/:id", RequirePermission(policy.OpProductRead), productHandler.GetByID)
	products.Put("/:id", RequirePermission(policy.OpProductWrite), productHandler.Update)
	products.Post("/:id/deactivate", RequirePermission(policy.OpProductWrite), productHandler.Deactivate)
	products.Post("/:id/activate", RequirePermission(policy.OpProductWrite), productHandler.Activate)

	// Users (solo super_admin)
	users := protected.Group("/users", RequirePermission(policy.OpUserManage))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)

	// Storage (lecturas abiertas a quien lee productos; escrituras restringidas)
	locations := protected.Group("/locations")
	storageHandler := NewStorageHandler(deps.StorageUC)
	locations.Post("/", RequirePermission(policy.OpStorageManage), storageHandler.CreateLocation)
	locations.Get("/", RequirePermission(policy.OpProductRead), storageHandler.ListLocations)
	locations.Put("/:id", RequirePermission(policy.OpStorageManage), storageHandler.UpdateLocation)
	locations.Delete("/:id", RequirePermission(policy.OpStorageManage), storageHandler.DeleteLocation)
	locations.Post("/:id/dimensions", RequirePermission(policy.OpStorageManage), storageHandler.CreateDimension)
	locations.Get("/:id/dimensions", RequirePermission(policy.OpProductRead), storageHandler.ListDimensions)
	locations.Delete("/:id/dimensions/:dimensionId", RequirePermission(policy.OpStorageManage), storageHandler.DeleteDimension)
}
