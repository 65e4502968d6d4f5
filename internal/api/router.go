package api

import (
	"food_ordering/internal/accounts"   // Account service
	"food_ordering/internal/config"     // Configuration
	"food_ordering/internal/domain"     // Order statuses
	"food_ordering/internal/inventory"  // Menu and stock controller
	"food_ordering/internal/middleware" // Custom middleware
	"food_ordering/internal/orders"     // Order lifecycle manager
	"food_ordering/internal/reporting"  // Transaction reporting
	"food_ordering/internal/wallet"     // Wallet controller

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the shared clients injected into every controller
type Deps struct {
	DB     *gorm.DB       // Storage client
	Redis  *redis.Client  // Optional cache
	Config *config.Config // Runtime configuration
}

// NewRouter builds the gin engine with every route registered once
func NewRouter(d Deps) *gin.Engine {
	wallets := wallet.NewController(d.DB, d.Redis)
	inv := inventory.NewController(d.DB, d.Redis)
	mgr := orders.NewManager(d.DB, wallets)
	rep := reporting.NewReporter(d.DB)
	svc := accounts.NewService(d.DB, wallets)
	admin := middleware.AdminChain(d.Config.JWTSecret, d.DB) // Empty when token auth is off
	guard := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, admin...), h)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORSMiddleware())

	r.GET("/health", HealthHandler(d.DB, d.Redis))
	r.Static("/images", d.Config.ImagesDir)

	// Auth routes
	r.POST("/signup", SignupHandler(svc))
	r.POST("/login", LoginHandler(svc, d.Config.JWTSecret))

	// Menu routes; writes are admin only
	r.GET("/menu", ListMenuHandler(inv))
	r.GET("/menu/:id", GetMenuItemHandler(inv))
	r.POST("/menu", guard(CreateMenuItemHandler(inv))...)
	r.PUT("/menu/:id", guard(UpdateMenuItemHandler(inv))...)
	r.DELETE("/menu/:id", guard(DeleteMenuItemHandler(inv))...)
	r.POST("/upload", guard(UploadImageHandler(d.Config.ImagesDir))...)

	// Order routes
	r.POST("/order", PlaceOrderHandler(inv))
	r.GET("/order/:id", GetOrderHandler(mgr))
	r.GET("/orders/all/:user_id", ListAllOrdersHandler(mgr))
	r.GET("/orders/:user_id", ListActiveOrdersHandler(mgr))
	r.PUT("/orders/:id", guard(SetStatusHandler(mgr))...)
	r.PUT("/orders/markPaid/:user_id", MarkPaidHandler(mgr))
	r.POST("/orders/checkout/:user_id", CheckoutHandler(mgr))
	r.DELETE("/orders/:id", DeleteOrderHandler(mgr))
	r.DELETE("/orders/deletePaid/:user_id", DeleteByStatusHandler(mgr, domain.StatusPaid))
	r.DELETE("/orders/deleteCompleted/:user_id", DeleteByStatusHandler(mgr, domain.StatusCompleted))

	// Wallet routes
	r.GET("/wallet/:user_id", GetWalletHandler(wallets))
	r.PUT("/wallet/add/:user_id", AddFundsHandler(wallets))
	r.PUT("/wallet/deduct/:user_id", DeductFundsHandler(wallets))

	// Admin routes
	users := r.Group("/users", admin...)
	users.GET("", ListUsersHandler(svc))
	users.PUT("/:id", UpdateUserHandler(svc))
	users.DELETE("/:id", DeleteUserHandler(svc))

	adminGroup := r.Group("/admin", admin...)
	adminGroup.GET("/transactions", ListTransactionsHandler(rep))
	adminGroup.DELETE("/transactions/clear", ClearTransactionsHandler(rep))

	// PayPal sandbox landing pages
	r.GET("/paypal-return", PaypalReturnHandler)
	r.GET("/paypal-cancel", PaypalCancelHandler)

	return r
}
