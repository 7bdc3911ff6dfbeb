package server

import (
	"context"
	"database/sql"
	"net/http"

	"dokan-be/internal/cart"
	"dokan-be/internal/config"
	"dokan-be/internal/handler"
	"dokan-be/internal/logger"
	"dokan-be/internal/metrics"
	appmw "dokan-be/internal/middleware"
	"dokan-be/internal/order"
	"dokan-be/internal/product"
	"dokan-be/internal/report"
	"dokan-be/internal/session"
	"dokan-be/internal/user"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	productHandler *handler.ProductHandler
	authHandler    *handler.AuthHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	profileHandler *handler.ProfileHandler
	adminHandler   *handler.AdminHandler
	adminAPIKey    string
}

func NewServer(cfg *config.Config, db *sql.DB) *Server {
	e := echo.New()
	e.HideBanner = true

	productRepo := product.NewRepository(db)
	userRepo := user.NewRepository(db)
	sessionRepo := session.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	orderRepo := order.NewRepository(db)

	productService := product.NewService(productRepo)
	userService := user.NewService(userRepo)
	sessionService := session.NewService(sessionRepo, cfg.SessionTTL)
	cartService := cart.NewService(cartRepo, productRepo)
	orderService := order.NewService(orderRepo, cartService)
	reportService := report.NewService(orderRepo)

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(logger.RequestID())
	e.Use(logger.RequestLogger())
	e.Use(appmw.Session(sessionService, cfg.SessionCookie, cfg.SessionTTL))
	e.Use(appmw.RateLimit())

	s := &Server{
		echo:           e,
		productHandler: handler.NewProductHandler(productService),
		authHandler:    handler.NewAuthHandler(userService, sessionService, cartService, cfg.SessionCookie),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(orderService),
		profileHandler: handler.NewProfileHandler(userService),
		adminHandler:   handler.NewAdminHandler(productService, orderService, reportService, userService),
		adminAPIKey:    cfg.AdminAPIKey,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":   "ok",
			"counters": metrics.Snapshot(),
		})
	})

	api.GET("/products", s.productHandler.List)
	api.GET("/products/:id", s.productHandler.Get)

	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/me", s.authHandler.Me)

	api.GET("/cart", s.cartHandler.Get)
	api.POST("/cart/items", s.cartHandler.AddItem)
	api.DELETE("/cart/items/:productId", s.cartHandler.RemoveItem)
	api.DELETE("/cart", s.cartHandler.Clear)

	api.POST("/orders", s.orderHandler.Place)
	api.GET("/orders/my", s.orderHandler.Mine)

	api.GET("/profile", s.profileHandler.Get)
	api.PUT("/profile", s.profileHandler.Update)

	// -------- back office --------
	admin := api.Group("/admin", appmw.AdminKey(s.adminAPIKey))
	admin.GET("/products", s.adminHandler.ListProducts)
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.adminHandler.DeleteProduct)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.GET("/orders/export", s.adminHandler.ExportOrders)
	admin.GET("/orders/:id", s.adminHandler.GetOrder)
	admin.PATCH("/orders/:id/status", s.adminHandler.UpdateOrderStatus)
	admin.GET("/users", s.adminHandler.ListUsers)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
