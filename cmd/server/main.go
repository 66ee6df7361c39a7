package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/stridewear/storefront-api/configs"
	"github.com/stridewear/storefront-api/internal/application/services"
	"github.com/stridewear/storefront-api/internal/core/ports"
	"github.com/stridewear/storefront-api/internal/infrastructure/db"
	"github.com/stridewear/storefront-api/internal/infrastructure/email"
	"github.com/stridewear/storefront-api/internal/infrastructure/health"
	"github.com/stridewear/storefront-api/internal/infrastructure/httpserver"
	"github.com/stridewear/storefront-api/internal/infrastructure/payment"
	infraRedis "github.com/stridewear/storefront-api/internal/infrastructure/redis"
	"github.com/stridewear/storefront-api/internal/infrastructure/repositories"
	"github.com/stridewear/storefront-api/internal/infrastructure/shipping"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting Stridewear storefront API...")

	// Initialize database
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Base repositories
	customerRepo := repositories.NewCustomerRepository(database, logger)
	baseProductRepo := repositories.NewProductRepository(database, logger)
	orderRepo := repositories.NewOrderRepository(database, logger)
	mergeRepo := repositories.NewMergeRepository(database, logger)

	productRepo := baseProductRepo
	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database)}

	// The OTP store and catalog cache prefer Redis when it is configured;
	// the file-backed store keeps single-node deployments dependency-free.
	var otpRepo ports.OTPRepository = repositories.NewOTPFileRepository(cfg.OTP.FilePath, logger)
	if cfg.Redis.Enabled {
		redisClient, err := infraRedis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()

		logger.Info("Connected to Redis successfully")

		otpRepo = repositories.NewOTPRedisRepository(redisClient, logger)
		productRepo = repositories.NewCachingProductRepository(baseProductRepo, infraRedis.NewCache(redisClient, "storefront"), 10*time.Minute)
		hcSlice = append(hcSlice, health.NewRedisHealthChecker(redisClient))
	}

	// Email delivery
	emailConfig := &email.EmailConfig{
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		CompanyName:    cfg.Email.CompanyName,
	}
	emailService, err := email.NewEmailService(emailConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	// Wire all services with their dependencies
	customerService := services.NewCustomerService(customerRepo, logger)
	authService := services.NewAuthService(customerRepo, &cfg.JWT, logger)
	otpService := services.NewOTPService(otpRepo, emailService, customerService, cfg.OTP.TTL, logger)
	syncService := services.NewSyncService(mergeRepo, logger)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, payment.NewSandboxGateway(logger), shipping.NewSandboxProvider(logger), logger)

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		AuthService:     authService,
		CustomerService: customerService,
		OTPService:      otpService,
		SyncService:     syncService,
		ProductService:  productService,
		OrderService:    orderService,
		HealthCheckers:  hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
