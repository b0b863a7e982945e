package router

import (
	"smart-billing/internal/config"
	"smart-billing/internal/handler"
	"smart-billing/internal/middleware"
	"smart-billing/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	catalog := service.NewCatalog(db)
	sales := service.NewSales(db)
	reports := service.NewReports(db)

	api := r.Group("/api")

	// login/registration (no auth required)
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything else requires a logged-in operator
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)

	customerHandler := handler.NewCustomerHandler(catalog)
	protected.POST("/customers", customerHandler.Create)
	protected.GET("/customers", customerHandler.List)
	protected.GET("/customers/search", customerHandler.Search)
	protected.GET("/customers/:id", customerHandler.Get)
	protected.PUT("/customers/:id", customerHandler.Update)
	protected.DELETE("/customers/:id", customerHandler.Delete)

	productHandler := handler.NewProductHandler(catalog)
	protected.POST("/products", productHandler.Create)
	protected.GET("/products", productHandler.List)
	protected.GET("/products/:id", productHandler.Get)
	protected.PUT("/products/:id", productHandler.Update)
	protected.DELETE("/products/:id", productHandler.Delete)

	saleHandler := handler.NewSaleHandler(sales)
	protected.POST("/sales", saleHandler.Create)
	protected.GET("/sales", saleHandler.List)
	protected.GET("/sales/:id", saleHandler.Get)
	protected.POST("/sales/:id/items", saleHandler.AddItem)
	protected.POST("/sales/:id/finalize", saleHandler.Finalize)
	protected.GET("/sales/:id/bill", saleHandler.Bill)

	reportHandler := handler.NewReportHandler(reports, cfg.App)
	protected.GET("/reports/summary", reportHandler.Summary)
	protected.GET("/reports/top-products", reportHandler.TopProducts)
	protected.GET("/reports/low-stock", reportHandler.LowStock)
	protected.GET("/customers/:id/history", reportHandler.CustomerHistory)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/sales/csv", exportHandler.ExportCSV)
	protected.GET("/export/sales/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db, cfg.App.PageSize)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
