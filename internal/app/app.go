package app

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"rapporteur_backend/internal/config"
	"rapporteur_backend/internal/handlers"
	"rapporteur_backend/internal/logger"
	"rapporteur_backend/internal/middleware"
	"rapporteur_backend/internal/repositories"
	"rapporteur_backend/internal/routes"
	"rapporteur_backend/internal/services"
	"rapporteur_backend/internal/storage"
	"rapporteur_backend/internal/validator"
)

func Run() {
	cfg := config.Load()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	repo, err := repositories.NewReportRepository(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize report store", "error", err, "store", cfg.Reports.Store)
	}
	defer repo.Close()
	logger.Info("Report store initialized", "store", cfg.Reports.Store)

	ginRouter := SetupRouter(cfg, repo)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine for the given store. Tests
// call it directly with an in-memory repository.
func SetupRouter(cfg *config.Config, repo repositories.ReportRepository) *gin.Engine {
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize file storage", "error", err)
	}
	logger.Info("File storage initialized", "path", cfg.Storage.BasePath)

	v := validator.New()

	fileService := services.NewFileService(store, cfg.Upload.MaxSize)
	reportService := services.NewReportService(repo, fileService, v)

	var sender services.MailSender
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, contact enquiries are logged only")
		sender = &logOnlySender{}
	}
	contactService := services.NewContactService(cfg, sender, v)

	appHandlers := &handlers.AppHandlers{
		ReportHandler:  handlers.NewReportHandler(reportService),
		ContactHandler: handlers.NewContactHandler(contactService),
	}

	ginRouter := initializeGinRouter(cfg)

	// Presentation pages need the HTML templates. Skip them when the
	// template directory is absent, as it is for API-only test runs.
	if templates, _ := filepath.Glob("web/templates/*.html"); len(templates) > 0 {
		ginRouter.LoadHTMLGlob("web/templates/*.html")
		appHandlers.PagesHandler = handlers.NewPagesHandler(cfg.Storage.BasePath)
	}

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.MetricsMiddleware())

	return ginRouter
}
