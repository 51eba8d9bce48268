package app

import (
	"errors"
	"fmt"

	"waselni_backend/database"
	"waselni_backend/internal/analytics"
	"waselni_backend/internal/config"
	"waselni_backend/internal/handlers"
	"waselni_backend/internal/logger"
	"waselni_backend/internal/middleware"
	"waselni_backend/internal/models"
	"waselni_backend/internal/payments"
	"waselni_backend/internal/repositories"
	"waselni_backend/internal/routes"
	"waselni_backend/internal/services"
	"waselni_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	provider := newPaymentProvider(cfg)
	visits := newVisitTracker(cfg)

	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(provider)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer, visits)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(gormDB)

	// 4. Регистрация маршрутов делегирована пакету routes
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func newPaymentProvider(cfg *config.Config) payments.Provider {
	if cfg.Payments.Provider == "stripe" {
		logger.Info("Payment provider: stripe")
		return payments.NewStripeProvider(cfg.Payments.StripeKey)
	}
	logger.Warn("Payment provider: sandbox (платежи не покидают процесс)")
	return payments.NewSandboxProvider()
}

func newVisitTracker(cfg *config.Config) *analytics.VisitTracker {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis не сконфигурирован, аналитика посещений отключена")
		return analytics.NewVisitTracker(nil)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	return analytics.NewVisitTracker(rdb)
}

func initializeServices(provider payments.Provider) *services.ServiceContainer {
	// --- Инициализация репозиториев ---
	userRepo := repositories.NewUserRepository()
	requestRepo := repositories.NewRequestRepository()
	offerRepo := repositories.NewOfferRepository()
	contractRepo := repositories.NewContractRepository()
	paymentRepo := repositories.NewPaymentRepository()
	reviewRepo := repositories.NewReviewRepository()
	settingsRepo := repositories.NewSettingsRepository()
	auditRepo := repositories.NewAuditRepository()

	// --- Инициализация сервисов ---
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	requestService := services.NewRequestService(requestRepo, contractRepo, userRepo)
	offerService := services.NewOfferService(offerRepo, contractRepo, userRepo)
	matchingService := services.NewMatchingService(requestRepo, offerRepo)
	contractService := services.NewContractService(contractRepo, requestRepo, offerRepo, userRepo, reviewRepo)
	paymentService := services.NewPaymentService(paymentRepo, contractRepo, settingsRepo, userRepo, provider)
	reviewService := services.NewReviewService(reviewRepo, contractRepo, userRepo)
	adminService := services.NewAdminService(userRepo, requestRepo, offerRepo, contractRepo, paymentRepo, reviewRepo, settingsRepo, auditRepo)

	return &services.ServiceContainer{
		AuthService:     authService,
		UserService:     userService,
		RequestService:  requestService,
		OfferService:    offerService,
		MatchingService: matchingService,
		ContractService: contractService,
		PaymentService:  paymentService,
		ReviewService:   reviewService,
		AdminService:    adminService,
	}
}

func initializeHandlers(container *services.ServiceContainer, visits *analytics.VisitTracker) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:      handlers.NewUserHandler(baseHandler, container.UserService, container.ReviewService),
		RequestHandler:   handlers.NewRequestHandler(baseHandler, container.RequestService, container.MatchingService),
		OfferHandler:     handlers.NewOfferHandler(baseHandler, container.OfferService, container.MatchingService),
		ContractHandler:  handlers.NewContractHandler(baseHandler, container.ContractService),
		PaymentHandler:   handlers.NewPaymentHandler(baseHandler, container.PaymentService),
		ReviewHandler:    handlers.NewReviewHandler(baseHandler, container.ReviewService),
		AdminHandler:     handlers.NewAdminHandler(baseHandler, container.AdminService, visits),
		AnalyticsHandler: handlers.NewAnalyticsHandler(baseHandler, visits),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		Name:         "Platform Administration",
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
