package router

import (
	"time"

	"cafepos/internal/config"
	"cafepos/internal/handler"
	"cafepos/internal/infra"
	"cafepos/internal/middleware"
	"cafepos/internal/repository"
	"cafepos/internal/service"
	"cafepos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, webhookCB *infra.CircuitBreaker) *gin.Engine {
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
	inventoryRepo := repository.NewInventoryRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	inventorySvc := service.NewInventoryService(inventoryRepo, ledgerRepo, dispatcher, cfg)
	menuSvc := service.NewMenuService(menuRepo)
	recipeSvc := service.NewRecipeService(recipeRepo, menuRepo, inventoryRepo)
	orderSvc := service.NewOrderService(orderRepo, menuRepo, recipeRepo, inventoryRepo, ledgerRepo, dispatcher, cfg)
	alertSvc := service.NewAlertService(inventoryRepo, rdb, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	menuH := handler.NewMenuHandler(menuSvc)
	recipesH := handler.NewRecipesHandler(recipeSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	alertsH := handler.NewAlertsHandler(alertSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, webhookCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, manager, admin — declared per-endpoint
		v1.POST("/orders", middleware.RequireRole("cashier", "manager", "admin"), ordersH.PlaceOrder)
		v1.GET("/orders", middleware.RequireRole("cashier", "manager", "admin"), ordersH.ListOrders)
		v1.GET("/orders/:id", middleware.RequireRole("cashier", "manager", "admin"), ordersH.GetOrder)

		// Menu — every role can read (the register needs the catalog)
		v1.GET("/menu", middleware.RequireRole("cashier", "manager", "admin"), menuH.List)
		v1.GET("/menu/:id", middleware.RequireRole("cashier", "manager", "admin"), menuH.Get)
		v1.GET("/menu/:id/recipe", middleware.RequireRole("manager", "admin"), recipesH.ListRecipe)
		menu := v1.Group("/menu", middleware.RequireRole("manager", "admin"))
		{
			menu.POST("", menuH.Create)
			menu.PUT("/:id", menuH.Update)
			menu.DELETE("/:id", menuH.Deactivate)
			menu.PUT("/:id/recipe", recipesH.SetRecipe)
		}
		v1.DELETE("/recipes/:id", middleware.RequireRole("manager", "admin"), recipesH.RemoveLine)

		// Inventory — managers run the stockroom; cashiers have no business here
		inv := v1.Group("/inventory", middleware.RequireRole("manager", "admin"))
		{
			inv.POST("", inventoryH.Create)
			inv.GET("", inventoryH.List)
			inv.GET("/:id", inventoryH.Get)
			inv.PUT("/:id", inventoryH.Update)
			inv.DELETE("/:id", inventoryH.Deactivate)
			inv.PATCH("/:id/stock", inventoryH.AdjustStock)
			inv.POST("/:id/write-off", inventoryH.WriteOff)
			inv.GET("/:id/ledger", inventoryH.Ledger)
		}

		v1.GET("/alerts", middleware.RequireRole("manager", "admin"), alertsH.GetAlerts)

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.POST("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
