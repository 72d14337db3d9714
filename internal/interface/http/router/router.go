// Package router assembles the gin engine: global middleware, the route
// table and the operational endpoints.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/infrastructure/config"
	"github.com/xiebiao/blend/internal/interface/http/handler"
	"github.com/xiebiao/blend/internal/interface/http/middleware"
)

// Handlers groups every HTTP handler the route table needs.
type Handlers struct {
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Subcategory *handler.SubcategoryHandler
	Banner      *handler.BannerHandler
	Home        *handler.HomeHandler
	Order       *handler.OrderHandler
	Auth        *handler.AuthHandler
	Admin       *handler.AdminHandler
}

// New builds the engine. Middleware order: recovery, request id, tracing,
// metrics, logging, CORS.
func New(cfg *config.Config, log *zap.Logger, auth *middleware.AuthMiddleware, h *Handlers) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestID())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing())
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.Logger(log), middleware.CORS(cfg.Server.CORSOrigins))

	// operational
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.PublicPath, cfg.Storage.LocalDir)
	}

	registerRoutes(r, auth, h)
	return r
}

func registerRoutes(r *gin.Engine, auth *middleware.AuthMiddleware, h *Handlers) {
	admin := auth.RequireAdmin()

	// catalog
	products := r.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", admin, h.Product.Create)
		products.PUT("/:id", admin, h.Product.Update)
		products.DELETE("/:id", admin, h.Product.Delete)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.GET("/:id/subcategories", h.Subcategory.ListByCategory)
		categories.GET("/:id/products", h.Product.ListByCategory)
		categories.POST("", admin, h.Category.Create)
		categories.PUT("/:id", admin, h.Category.Update)
		categories.DELETE("/:id", admin, h.Category.Delete)
	}

	subcategories := r.Group("/subcategories", admin)
	{
		subcategories.GET("", h.Subcategory.List)
		subcategories.GET("/:id", h.Subcategory.Get)
		subcategories.POST("", h.Subcategory.Create)
		subcategories.PUT("/:id", h.Subcategory.Update)
		subcategories.DELETE("/:id", h.Subcategory.Delete)
	}

	banners := r.Group("/banners")
	{
		banners.GET("", h.Banner.List)
		banners.GET("/:id", h.Banner.Get)
		banners.POST("", admin, h.Banner.Create)
		banners.PUT("/:id", admin, h.Banner.Update)
		banners.DELETE("/:id", admin, h.Banner.Delete)
	}

	home := r.Group("/home")
	{
		home.GET("/slider", h.Home.Slider)
		home.GET("/best-seller", h.Home.BestSeller)
		home.GET("/best-select", h.Home.BestSelect)
		home.GET("/categories", h.Home.Categories)
	}

	// orders
	orders := r.Group("/orders", admin)
	{
		orders.GET("", h.Order.List)
		orders.GET("/statistics/dashboard", h.Order.Statistics)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.DELETE("/:id", h.Order.Delete)
	}

	public := r.Group("/public/orders")
	{
		public.POST("", auth.OptionalUser(), h.Order.Create)
		public.POST("/quick", auth.OptionalUser(), h.Order.Quick)
		public.GET("/my-orders", auth.RequireUser(), h.Order.MyOrders)
	}

	// accounts
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/verify-email", h.Auth.VerifyEmail)
		authGroup.POST("/resend-code", h.Auth.ResendCode)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/google", h.Auth.Google)
		authGroup.GET("/google/callback", h.Auth.GoogleCallback)
		authGroup.POST("/logout", auth.RequireUser(), h.Auth.Logout)
	}

	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/login", h.Admin.Login)
		adminGroup.POST("/logout", admin, h.Admin.Logout)
		adminGroup.GET("/users", admin, h.Admin.ListUsers)
		adminGroup.GET("/users/:id", admin, h.Admin.GetUser)
	}
}
