// Package app assembles the application: configuration, database, storage,
// mail, websocket hub, services, handlers and the HTTP server itself.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"safetyconnect_backend/database"
	"safetyconnect_backend/internal/config"
	"safetyconnect_backend/internal/email"
	"safetyconnect_backend/internal/handlers"
	"safetyconnect_backend/internal/logger"
	"safetyconnect_backend/internal/middleware"
	"safetyconnect_backend/internal/models"
	"safetyconnect_backend/internal/repositories"
	"safetyconnect_backend/internal/routes"
	"safetyconnect_backend/internal/services"
	"safetyconnect_backend/internal/storage"
	"safetyconnect_backend/internal/validator"
	"safetyconnect_backend/internal/workers"
	"safetyconnect_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("failed to migrate schema", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	engine, mailWorker := SetupRouter(cfg, gormDB)

	if mailWorker != nil {
		if err := mailWorker.Start(context.Background()); err != nil {
			logger.Fatal("failed to start mail worker", "error", err)
		}
		defer mailWorker.Stop()
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := engine.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with every route registered, plus the
// background mail worker (nil when SMTP is not configured).
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.MailWorker) {
	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	emailCfg := email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		Username:     cfg.Email.SMTPUsername,
		Password:     cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		TemplatesDir: cfg.Email.TemplatesDir,
	}

	templates, err := email.NewTemplateManager(emailCfg)
	if err != nil {
		logger.Fatal("failed to load email templates", "error", err)
	}

	// The hub needs the chat service for subscription checks and the chat
	// service needs the hub for broadcasts; the closure breaks the cycle.
	var serviceContainer *services.ServiceContainer
	wsManager := ws.NewManager(func(ctx context.Context, roomID, userID string, role models.UserRole) bool {
		if serviceContainer == nil {
			return false
		}
		return serviceContainer.ChatService.CanAccessRoom(ctx, gormDB, roomID, userID, role)
	})
	go wsManager.Run()
	wsHandler := ws.NewWebSocketHandler(wsManager)

	serviceContainer = services.NewServiceContainer(templates, store, wsManager)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New(), store)

	engine := initializeGinRouter(gormDB)
	routes.RegisterRoutes(engine, appHandlers, wsHandler)

	return engine, buildMailWorker(cfg, emailCfg, gormDB)
}

// buildMailWorker wires the outbox drainer. Without SMTP settings the queue
// keeps accumulating jobs but nothing is delivered.
func buildMailWorker(cfg *config.Config, emailCfg email.Config, gormDB *gorm.DB) *workers.MailWorker {
	if err := emailCfg.Validate(); err != nil {
		logger.Warn("SMTP not configured, mail delivery disabled", "reason", err.Error())
		return nil
	}

	sender, err := email.NewSMTPSender(emailCfg)
	if err != nil {
		logger.Fatal("failed to initialize SMTP sender", "error", err)
	}

	return workers.NewMailWorker(
		repositories.NewMailJobRepository(gormDB),
		sender,
		workers.MailWorkerConfig{
			Interval:    time.Duration(cfg.MailWorker.IntervalSeconds) * time.Second,
			BatchSize:   cfg.MailWorker.BatchSize,
			MaxAttempts: cfg.MailWorker.MaxAttempts,
		},
	)
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account when the configured
// email does not exist yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.FirstAdminEmail
	adminPassword := cfg.Admin.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("first admin credentials not configured, skipping admin seeding")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("admin user already exists", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashed),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("created first admin user", "email", adminEmail)
	return nil
}
