package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/handlers"
	"github.com/polkiloo/restaurant/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RestaurantFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	salesHandler := handlers.NewSalesHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	admin := middleware.RequireRole(facade, model.RoleAdministrator)
	waiter := middleware.RequireRole(facade, model.RoleWaiter)
	staff := middleware.RequireRole(facade, model.RoleAdministrator, model.RoleWaiter)

	engine.GET("/health", healthHandler.Check)
	engine.POST("/signup", authHandler.SignUp)
	engine.POST("/signin", authHandler.SignIn)

	categories := engine.Group("/categories")
	categories.GET("", staff, catalogHandler.Categories)
	categories.POST("", admin, catalogHandler.CreateCategory)

	menus := engine.Group("/menus")
	menus.GET("", staff, catalogHandler.Menus)
	menus.POST("", admin, catalogHandler.CreateMenu)
	menus.PUT("/:id", admin, catalogHandler.UpdateMenu)
	menus.DELETE("/:id", admin, catalogHandler.DeleteMenu)
	menus.PATCH("/availability/:id", admin, catalogHandler.SetAvailability)

	orders := engine.Group("/orders")
	orders.GET("/finished", admin, orderHandler.Finished)
	orders.GET("/sales", admin, salesHandler.Overview)
	orders.GET("/sales/daily", admin, salesHandler.Daily)
	orders.GET("/sales/monthly", admin, salesHandler.Monthly)

	orders.GET("/active", waiter, orderHandler.Active)
	orders.POST("", waiter, orderHandler.Create)
	orders.PATCH("/add-product", waiter, orderHandler.AddProduct)
	orders.PATCH("/remove-product", waiter, orderHandler.RemoveProduct)
	orders.PATCH("/update-quantity", waiter, orderHandler.UpdateQuantity)
	orders.PATCH("/cancel/:orderId", waiter, orderHandler.Cancel)
	orders.PATCH("/finish/:orderId", waiter, orderHandler.Finish)
	orders.GET("/:orderId", waiter, orderHandler.Get)

	return engine
}
