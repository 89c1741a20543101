package router

import (
	"time"

	"santripay/internal/config"
	"santripay/internal/handler"
	"santripay/internal/middleware"
	"santripay/internal/model"
	"santripay/internal/repository"
	"santripay/internal/service"
	"santripay/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
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
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	santriRepo := repository.NewSantriRepository(db)
	transaksiRepo := repository.NewTransaksiRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, accountRepo, sessionRepo, cfg)
	userSvc := service.NewUserService(userRepo, accountRepo, sessionRepo, santriRepo, dispatcher)
	santriSvc := service.NewSantriService(santriRepo, userRepo, accountRepo, sessionRepo, transaksiRepo, cfg)
	importSvc := service.NewImportService(santriSvc, cfg)
	transaksiSvc := service.NewTransaksiService(transaksiRepo, santriRepo, cfg)
	dashboardSvc := service.NewDashboardService(santriRepo, transaksiRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	santriH := handler.NewSantriHandler(santriSvc, importSvc)
	transaksiH := handler.NewTransaksiHandler(transaksiSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	jwtMW := middleware.JWTAuth(cfg.JWTSecret, sessionRepo)
	adminOnly := middleware.RequireRole(model.AdminRoles...)

	api := r.Group("/api")
	{
		// Auth (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
			auth.POST("/register", authH.Register)
			auth.POST("/logout", jwtMW, authH.Logout)
		}

		// Santri CRUD stays open — the admin frontend proxies it without a
		// token, matching the deployed surface.
		api.GET("/santri", santriH.List)
		api.POST("/santri", santriH.Create)
		api.PUT("/santri", santriH.Update)
		api.DELETE("/santri", santriH.Delete)
		api.POST("/santri/import", jwtMW, adminOnly, santriH.ImportCSV)

		// Users — reads open, writes admin-only
		api.GET("/users", usersH.List)
		api.POST("/users", jwtMW, adminOnly, usersH.Create)
		api.DELETE("/users", jwtMW, adminOnly, usersH.Delete)

		// Transaksi — reads open, writes and receipts admin-only
		api.GET("/transaksi", transaksiH.List)
		api.GET("/transaksi/recent", transaksiH.Recent)
		api.POST("/transaksi", jwtMW, adminOnly, transaksiH.Create)
		api.GET("/transaksi/:id/kwitansi", jwtMW, adminOnly, transaksiH.Kwitansi)

		// Dashboard — admin roles only
		api.GET("/dashboard", jwtMW, adminOnly, dashboardH.Get)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
