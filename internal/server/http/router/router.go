package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/solarteam/purchaseline/internal/domain/model"
	"github.com/solarteam/purchaseline/internal/server/http/handlers"
	"github.com/solarteam/purchaseline/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PurchasingFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	itemHandler := handlers.NewItemHandler(facade)
	pushHandler := handlers.NewPushHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/export", orderHandler.Export)
	orders.GET("/:id", orderHandler.Detail)
	orders.DELETE("/:id", orderHandler.Delete)
	orders.POST("/:id/documents", orderHandler.AttachDocument)
	orders.PUT("/:id/status",
		middleware.RequireRole(facade, model.RoleOperations, model.RoleFinance),
		orderHandler.UpdateStatus)

	items := authed.Group("/items")
	items.POST("", itemHandler.CreateInventory)
	items.GET("/inventory", itemHandler.Inventory)
	items.PUT("/:id/status", itemHandler.UpdateStatus)
	items.PATCH("/:id", itemHandler.Update)
	items.DELETE("/:id", itemHandler.Delete)

	budget := authed.Group("/budget")
	budget.Use(middleware.RequireRole(facade, model.RoleFinance))
	budget.GET("/subteams", orderHandler.SubteamSpend)

	push := authed.Group("/push")
	push.POST("/register", pushHandler.Register)
	push.POST("/unregister", pushHandler.Unregister)

	return engine
}
