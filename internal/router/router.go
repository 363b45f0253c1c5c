package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/config"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/handler"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/middleware"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/repository"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/service"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewGroomingServiceRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	movementRepo := repository.NewInventoryMovementRepository(db)
	financialRepo := repository.NewFinancialRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	catalogSvc := service.NewCatalogService(productRepo, serviceRepo, rdb)
	customerFinSvc := service.NewFinancialService(financialRepo)
	customerSvc := service.NewCustomerService(customerRepo, customerFinSvc)
	sessionSvc := service.NewSessionService(sessionRepo, orderRepo)
	orderSvc := service.NewOrderService(
		orderRepo, sessionRepo, productRepo, serviceRepo, customerRepo,
		movementRepo, appointmentRepo, customerFinSvc, dispatcher,
		cfg.EnforceStockFloor,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	sessionsH := handler.NewSessionsHandler(sessionSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Price check — no auth, feeds the in-store price terminal
	r.GET("/v1/price/:sku", catalogH.PriceCheck)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: groomer, manager, admin — declared per-endpoint
		v1.GET("/auth/me", authH.Me)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", middleware.RequireRole("groomer", "manager", "admin"), sessionsH.Open)
			sessions.POST("/:id/close", middleware.RequireRole("groomer", "manager", "admin"), sessionsH.Close)
			sessions.GET("/active", middleware.RequireRole("groomer", "manager", "admin"), sessionsH.GetActive)
			sessions.GET("/:id", middleware.RequireRole("groomer", "manager", "admin"), sessionsH.Get)
			sessions.GET("", middleware.RequireRole("manager", "admin"), sessionsH.History)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.RequireRole("groomer", "manager", "admin"), ordersH.Commit)
			orders.GET("", middleware.RequireRole("groomer", "manager", "admin"), ordersH.List)
			orders.GET("/:id", middleware.RequireRole("groomer", "manager", "admin"), ordersH.Get)
			// Cancellation is a supervisor action
			orders.POST("/:id/cancel", middleware.RequireRole("manager", "admin"), ordersH.Cancel)
		}

		v1.GET("/items/search", middleware.RequireRole("groomer", "manager", "admin"), catalogH.Search)
		v1.GET("/products/:id", middleware.RequireRole("groomer", "manager", "admin"), catalogH.GetProduct)
		v1.POST("/products/quick", middleware.RequireRole("manager", "admin"), catalogH.QuickCreateProduct)

		customers := v1.Group("/customers", middleware.RequireRole("groomer", "manager", "admin"))
		{
			customers.GET("", customersH.Search)
			customers.GET("/:id", customersH.Get)
			customers.POST("/quick", customersH.QuickCreate)
			customers.GET("/:id/statement", customersH.Statement)
		}

		// Appointment checkout — seeds the POS cart from a scheduled visit
		v1.GET("/appointments/:id/checkout", middleware.RequireRole("groomer", "manager", "admin"), ordersH.AppointmentCheckout)
	}

	return r
}
