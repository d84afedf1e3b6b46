package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"samiratravel/config"
	"samiratravel/database"
	_ "samiratravel/docs" // Swagger 문서
	"samiratravel/handlers"
	"samiratravel/limiter"
	"samiratravel/logger"
	"samiratravel/scheduler"
	"samiratravel/server"
	"samiratravel/services"
	"samiratravel/utils"
	"samiratravel/web"
)

// @title Samira Travel API
// @version 1.0
// @description Landing page content and admin console API

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token from /api/admin/login. Format: Bearer {token}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatal("Invalid configuration: %v", err)
	}

	// 로거 초기화
	logConfig := logger.Config{
		Level:      logger.ParseLevel(cfg.LogLevel),
		LogDir:     cfg.LogDir,
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,                // 7일
		UseColor:   cfg.Environment != "production",
		ShowCaller: false,
	}
	if err := logger.Initialize(logConfig); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("Samira Travel Server Starting (%s)", cfg.Environment)
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	if err := database.Initialize(cfg.DBDriver, cfg.DBDSN); err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := database.SeedAdmins(ctx, database.DB, cfg.AdminEmails); err != nil {
		logger.Fatal("Failed to seed admin accounts: %v", err)
	}

	limiterStore, err := limiter.OpenBoltStore(cfg.LimiterDBPath)
	if err != nil {
		logger.Fatal("Failed to open login limiter store: %v", err)
	}
	defer limiterStore.Close()

	// 서비스 계층 초기화
	sqlExecutor := services.NewSQLExecutor(database.DB)
	packageService := services.NewPackageService(sqlExecutor)
	galleryService := services.NewGalleryService(sqlExecutor)
	profileService := services.NewProfileService(sqlExecutor)
	tourLeaderService := services.NewTourLeaderService(sqlExecutor)
	activityService := services.NewActivityService(sqlExecutor)
	sessionService := services.NewAdminSessionService(sqlExecutor)
	siteService := services.NewSiteService(packageService, galleryService, profileService, tourLeaderService)

	attempts := limiter.New(limiterStore, cfg.LoginAttemptLimit, cfg.LoginBlockDuration)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	verifier := services.NewTokenIdentityVerifier(cfg.IDTokenSecret, cfg.IDTokenIssuer, cfg.IDTokenAudience)

	landing, err := web.LandingTemplate()
	if err != nil {
		logger.Fatal("Failed to parse landing template: %v", err)
	}

	router := server.NewRouter(server.Handlers{
		Auth:      handlers.NewAuthHandler(verifier, sessionService, tokens, attempts, activityService),
		Packages:  handlers.NewPackageHandler(packageService, activityService),
		Gallery:   handlers.NewGalleryHandler(galleryService, activityService),
		Profile:   handlers.NewProfileHandler(profileService, tourLeaderService, activityService),
		Dashboard: handlers.NewDashboardHandler(packageService, galleryService, activityService),
		Site:      handlers.NewSiteHandler(siteService, packageService, galleryService, profileService, tourLeaderService, landing),
	}, server.Options{
		Tokens:   tokens,
		Sessions: sessionService,
		AdminDir: filepath.Join(cfg.WebDir, "admin"),
	})

	// 스케줄러 시작 (만료된 잠금 및 세션 정리)
	scheduler.New(attempts, sessionService, activityService, scheduler.DefaultInterval).Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Server listening on %s", cfg.Addr)
		logger.Info("Admin console: http://localhost%s/admin/", cfg.Addr)
		logger.Info("Swagger UI: http://localhost%s/swagger/index.html", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
