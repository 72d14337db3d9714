// Package bootstrap wires repositories, domain services, use cases and
// handlers into a ready gin engine. cmd/api and the integration tests both
// build the application through it.
package bootstrap

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appadmin "github.com/xiebiao/blend/internal/application/admin"
	appauth "github.com/xiebiao/blend/internal/application/auth"
	appbanner "github.com/xiebiao/blend/internal/application/banner"
	appcategory "github.com/xiebiao/blend/internal/application/category"
	apphome "github.com/xiebiao/blend/internal/application/home"
	apporder "github.com/xiebiao/blend/internal/application/order"
	appproduct "github.com/xiebiao/blend/internal/application/product"
	appsubcategory "github.com/xiebiao/blend/internal/application/subcategory"
	appuser "github.com/xiebiao/blend/internal/application/user"
	"github.com/xiebiao/blend/internal/domain/admin"
	"github.com/xiebiao/blend/internal/domain/media"
	"github.com/xiebiao/blend/internal/domain/product"
	"github.com/xiebiao/blend/internal/domain/user"
	"github.com/xiebiao/blend/internal/infrastructure/config"
	"github.com/xiebiao/blend/internal/infrastructure/persistence/postgres"
	"github.com/xiebiao/blend/internal/interface/http/dto"
	"github.com/xiebiao/blend/internal/interface/http/handler"
	"github.com/xiebiao/blend/internal/interface/http/middleware"
	"github.com/xiebiao/blend/internal/interface/http/router"
	"github.com/xiebiao/blend/pkg/jwt"
)

// TokenStore is the logout blacklist, read by the auth middleware and
// written by logout.
type TokenStore interface {
	appauth.TokenRevoker
	middleware.Blacklist
}

// Infra holds the external collaborators. Optional ones are left nil:
// Tokens (no Redis, logout is client side only), Google (Google login
// answers 404) and Events (order events are dropped).
type Infra struct {
	DB       *gorm.DB
	Images   media.Store
	Notifier appauth.Notifier
	JWT      *jwt.Manager
	Log      *zap.Logger

	Tokens TokenStore
	Google appauth.IdentityProvider
	Events apporder.EventPublisher
}

// App is the assembled application.
type App struct {
	Engine *gin.Engine
	Seed   *appadmin.SeedUseCase
}

// Build wires the application. Construction order follows the layers:
// repositories, domain services, use cases, handlers, router.
func Build(cfg *config.Config, infra Infra) *App {
	log := infra.Log
	events := infra.Events
	if events == nil {
		events = apporder.NopPublisher{}
	}
	var (
		revoker   appauth.TokenRevoker
		blacklist middleware.Blacklist
	)
	if infra.Tokens != nil {
		revoker, blacklist = infra.Tokens, infra.Tokens
	}

	dto.RegisterValidators()

	// 1. repositories
	categoryRepo := postgres.NewCategoryRepository(infra.DB)
	subcategoryRepo := postgres.NewSubcategoryRepository(infra.DB)
	productRepo := postgres.NewProductRepository(infra.DB)
	orderRepo := postgres.NewOrderRepository(infra.DB)
	bannerRepo := postgres.NewBannerRepository(infra.DB)
	userRepo := postgres.NewUserRepository(infra.DB)
	codeRepo := postgres.NewVerificationRepository(infra.DB)
	adminRepo := postgres.NewAdminRepository(infra.DB)
	txManager := postgres.NewTxManager(infra.DB)

	// 2. domain services
	productService := product.NewService(productRepo, subcategoryRepo)
	userService := user.NewService(userRepo)
	adminService := admin.NewService(adminRepo)

	// 3. use cases and handlers
	productUploads := handler.UploadLimits{MaxFileSize: cfg.Storage.MaxFileSize, MaxFiles: cfg.Image.MaxProductImages}
	singleUpload := handler.UploadLimits{MaxFileSize: cfg.Storage.MaxFileSize, MaxFiles: 1}

	var google *appauth.GoogleLoginUseCase
	if infra.Google != nil {
		google = appauth.NewGoogleLoginUseCase(infra.Google, userService, infra.JWT)
	}
	logout := appauth.NewLogoutUseCase(revoker, log)

	handlers := &router.Handlers{
		Product: handler.NewProductHandler(
			appproduct.NewListProductsUseCase(productRepo),
			appproduct.NewListByCategoryUseCase(productRepo, categoryRepo),
			appproduct.NewGetProductUseCase(productRepo),
			appproduct.NewCreateProductUseCase(productRepo, categoryRepo, productService, infra.Images, log),
			appproduct.NewUpdateProductUseCase(productRepo, categoryRepo, productService, infra.Images, log),
			appproduct.NewDeleteProductUseCase(productRepo, infra.Images, log),
			productUploads,
		),
		Category: handler.NewCategoryHandler(
			appcategory.NewListCategoriesUseCase(categoryRepo),
			appcategory.NewGetCategoryUseCase(categoryRepo),
			appcategory.NewCreateCategoryUseCase(categoryRepo, infra.Images, log),
			appcategory.NewUpdateCategoryUseCase(categoryRepo, infra.Images, log),
			appcategory.NewDeleteCategoryUseCase(categoryRepo, productRepo, txManager, infra.Images, log),
			singleUpload,
		),
		Subcategory: handler.NewSubcategoryHandler(
			appsubcategory.NewListSubcategoriesUseCase(subcategoryRepo),
			appsubcategory.NewListByCategoryUseCase(subcategoryRepo, categoryRepo),
			appsubcategory.NewGetSubcategoryUseCase(subcategoryRepo),
			appsubcategory.NewCreateSubcategoryUseCase(subcategoryRepo, categoryRepo),
			appsubcategory.NewUpdateSubcategoryUseCase(subcategoryRepo, categoryRepo, productRepo),
			appsubcategory.NewDeleteSubcategoryUseCase(subcategoryRepo),
		),
		Banner: handler.NewBannerHandler(
			appbanner.NewListBannersUseCase(bannerRepo),
			appbanner.NewGetBannerUseCase(bannerRepo),
			appbanner.NewCreateBannerUseCase(bannerRepo, infra.Images, log),
			appbanner.NewUpdateBannerUseCase(bannerRepo, infra.Images, log),
			appbanner.NewDeleteBannerUseCase(bannerRepo, infra.Images, log),
			singleUpload,
		),
		Home: handler.NewHomeHandler(apphome.NewHomeUseCase(productRepo, categoryRepo)),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(orderRepo, productService, events, log),
			apporder.NewQuickOrderUseCase(orderRepo, productService, events, log),
			apporder.NewUpdateOrderStatusUseCase(orderRepo, productService, events, log),
			apporder.NewGetOrderUseCase(orderRepo),
			apporder.NewListOrdersUseCase(orderRepo),
			apporder.NewDeleteOrderUseCase(orderRepo),
			apporder.NewStatisticsUseCase(orderRepo),
			apporder.NewMyOrdersUseCase(orderRepo),
		),
		Auth: handler.NewAuthHandler(
			appauth.NewRegisterUseCase(userService, codeRepo, infra.Notifier, log),
			appauth.NewVerifyEmailUseCase(userRepo, codeRepo, infra.Notifier, infra.JWT, log),
			appauth.NewResendCodeUseCase(userRepo, codeRepo, infra.Notifier, log),
			appauth.NewLoginUseCase(userService, infra.JWT),
			google,
			logout,
		),
		Admin: handler.NewAdminHandler(
			appadmin.NewLoginUseCase(adminService, infra.JWT),
			logout,
			appuser.NewListUsersUseCase(userRepo),
			appuser.NewGetUserUseCase(userRepo),
		),
	}

	// 4. router
	authMiddleware := middleware.NewAuthMiddleware(infra.JWT, blacklist)
	return &App{
		Engine: router.New(cfg, log, authMiddleware, handlers),
		Seed:   appadmin.NewSeedUseCase(adminService, log),
	}
}
