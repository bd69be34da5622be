package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tradecore/internal/config"
	"tradecore/internal/domain"
	"tradecore/internal/handler"
	"tradecore/internal/infra"
	"tradecore/internal/middleware"
	"tradecore/internal/repository"
	"tradecore/internal/service"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB, backupMgr *infra.BackupManager) *gin.Engine {
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
	employeeRepo := repository.NewEmployeeRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	contentRepo := repository.NewContentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	auditSvc := service.NewAuditService(auditRepo)
	authSvc := service.NewAuthService(employeeRepo, sessionRepo, auditSvc, cfg)
	inventorySvc := service.NewInventoryService(productRepo, auditSvc)
	orderSvc := service.NewOrderService(orderRepo, clientRepo, inventorySvc, auditSvc)
	clientSvc := service.NewClientService(clientRepo, auditSvc)
	productSvc := service.NewProductService(productRepo, orderRepo, auditSvc)
	contentSvc := service.NewContentService(contentRepo, auditSvc)
	reportSvc := service.NewReportService(reportRepo, cfg.ReportStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	productsH := handler.NewProductsHandler(productSvc, inventorySvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	contentH := handler.NewContentHandler(contentSvc)
	auditH := handler.NewAuditHandler(auditSvc, time.Duration(cfg.AuditRetentionDays)*24*time.Hour)
	reportsH := handler.NewReportsHandler(reportSvc)
	backupH := handler.NewBackupHandler(backupMgr)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db))

	// Public website — published content and active catalog, no auth
	public := r.Group("/v1/public")
	{
		public.GET("/content/:page", contentH.PublicPage)
		public.GET("/catalog", productsH.Catalog)
	}

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes — role gates use the flat rank order:
	// admin > manager > content_manager > cashier > viewer
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)
		v1.POST("/auth/change-password", authH.ChangePassword)

		// Orders — cashiers create and advance, managers cancel via the same
		// transition endpoint (the state machine governs what is legal)
		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.RequireRole(domain.RoleCashier), ordersH.Create)
			orders.GET("", middleware.RequireRole(domain.RoleViewer), ordersH.List)
			orders.GET("/stats", middleware.RequireRole(domain.RoleViewer), ordersH.Stats)
			orders.GET("/:id", middleware.RequireRole(domain.RoleViewer), ordersH.Get)
			orders.PATCH("/:id/status", middleware.RequireRole(domain.RoleCashier), ordersH.TransitionStatus)
		}

		// Products — reads for everyone, writes for managers
		v1.GET("/products", middleware.RequireRole(domain.RoleViewer), productsH.List)
		v1.GET("/products/sku/:sku", middleware.RequireRole(domain.RoleViewer), productsH.GetBySKU)
		v1.GET("/products/alerts", middleware.RequireRole(domain.RoleViewer), productsH.LowStockAlerts)
		v1.GET("/products/:id", middleware.RequireRole(domain.RoleViewer), productsH.Get)
		products := v1.Group("/products", middleware.RequireRole(domain.RoleManager))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.PATCH("/:id/reactivate", productsH.Reactivate)
			products.PATCH("/:id/stock", productsH.AdjustStock)
		}

		// Clients — cashiers register and update, managers deactivate
		clients := v1.Group("/clients")
		{
			clients.POST("", middleware.RequireRole(domain.RoleCashier), clientsH.Create)
			clients.GET("", middleware.RequireRole(domain.RoleViewer), clientsH.List)
			clients.GET("/:id", middleware.RequireRole(domain.RoleViewer), clientsH.Get)
			clients.PUT("/:id", middleware.RequireRole(domain.RoleCashier), clientsH.Update)
			clients.DELETE("/:id", middleware.RequireRole(domain.RoleManager), clientsH.Deactivate)
		}

		// Website content — content managers and above
		content := v1.Group("/content", middleware.RequireRole(domain.RoleContentManager))
		{
			content.GET("", contentH.List)
			content.GET("/:page", contentH.AdminPage)
			content.PUT("", contentH.Upsert)
			content.DELETE("/:id", contentH.Delete)
		}

		// Reports — managers and above
		reports := v1.Group("/reports", middleware.RequireRole(domain.RoleManager))
		{
			reports.GET("/sales", reportsH.SalesSummary)
			reports.GET("/sales/pdf", reportsH.ExportPDF)
		}

		// Administration — admin only
		users := v1.Group("/users", middleware.RequireRole(domain.RoleAdmin))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}

		audit := v1.Group("/audit", middleware.RequireRole(domain.RoleAdmin))
		{
			audit.GET("", auditH.List)
			audit.POST("/purge", auditH.Purge)
		}

		backups := v1.Group("/backups", middleware.RequireRole(domain.RoleAdmin))
		{
			backups.POST("", backupH.Create)
			backups.GET("", backupH.List)
			backups.POST("/restore", backupH.Restore)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
