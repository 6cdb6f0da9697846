package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/forgo/foundry/api/internal/config"
	"github.com/forgo/foundry/api/internal/database"
	"github.com/forgo/foundry/api/internal/handler"
	"github.com/forgo/foundry/api/internal/metrics"
	"github.com/forgo/foundry/api/internal/middleware"
	"github.com/forgo/foundry/api/internal/repository"
	"github.com/forgo/foundry/api/internal/service"
	"github.com/forgo/foundry/api/internal/upload"
)

func main() {
	// Local overrides; absence is fine outside development
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize upload store for submission images
	uploads, err := upload.NewStore(upload.Config{
		Dir:       cfg.Upload.Dir,
		URLPrefix: "/uploads",
		MaxBytes:  cfg.Upload.MaxBytes,
	})
	if err != nil {
		slog.Error("failed to initialize upload store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metrics.Register()

	// Initialize repositories
	startupRepo := repository.NewStartupRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	userRepo := repository.NewUserRepository(db)
	investorRepo := repository.NewInvestorRepository(db)

	// Initialize services
	startupService := service.NewStartupService(service.StartupServiceConfig{
		StartupRepo:      startupRepo,
		StrictValidation: cfg.Submission.Strict,
	})

	problemService := service.NewProblemService(service.ProblemServiceConfig{
		ProblemRepo: problemRepo,
	})

	userService := service.NewUserService(service.UserServiceConfig{
		UserRepo: userRepo,
	})

	investorService := service.NewInvestorService(service.InvestorServiceConfig{
		InvestorRepo: investorRepo,
	})

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})
	defer rateLimiter.Stop()

	// Initialize handlers
	startupHandler := handler.NewStartupHandler(startupService, uploads, cfg.Upload.MaxBytes)
	problemHandler := handler.NewProblemHandler(problemService)
	userHandler := handler.NewUserHandler(userService)
	investorHandler := handler.NewInvestorHandler(investorService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health and metrics endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public startup endpoints (original wire contract)
	mux.HandleFunc("POST /api/startups", startupHandler.SubmitStartup)
	mux.HandleFunc("GET /api/startups", startupHandler.ListStartups)

	// Startup endpoints
	mux.HandleFunc("GET /api/startups/search", startupHandler.SearchStartups)
	mux.HandleFunc("GET /api/startups/{id}", startupHandler.GetStartup)
	mux.HandleFunc("PATCH /api/startups/{id}", startupHandler.PatchStartup)
	mux.HandleFunc("DELETE /api/startups/{id}", startupHandler.DeleteStartup)

	// Problem endpoints
	mux.HandleFunc("POST /api/problems", problemHandler.CreateProblem)
	mux.HandleFunc("GET /api/problems", problemHandler.ListProblems)
	mux.HandleFunc("GET /api/problems/{id}", problemHandler.GetProblem)
	mux.HandleFunc("PATCH /api/problems/{id}", problemHandler.PatchProblem)
	mux.HandleFunc("DELETE /api/problems/{id}", problemHandler.DeleteProblem)
	mux.HandleFunc("PUT /api/problems/{id}/startups/{startupId}", problemHandler.AttachStartup)
	mux.HandleFunc("DELETE /api/problems/{id}/startups/{startupId}", problemHandler.DetachStartup)

	// User endpoints
	mux.HandleFunc("POST /api/users", userHandler.CreateUser)
	mux.HandleFunc("GET /api/users", userHandler.ListUsers)
	mux.HandleFunc("GET /api/users/{id}", userHandler.GetUser)
	mux.HandleFunc("PATCH /api/users/{id}", userHandler.PatchUser)
	mux.HandleFunc("DELETE /api/users/{id}", userHandler.DeleteUser)

	// Investor endpoints
	mux.HandleFunc("GET /api/investors/{id}", investorHandler.GetInvestor)
	mux.HandleFunc("PUT /api/investors/{id}/saved/{startupId}", investorHandler.SaveStartup)
	mux.HandleFunc("DELETE /api/investors/{id}/saved/{startupId}", investorHandler.UnsaveStartup)
	mux.HandleFunc("PUT /api/investors/{id}/interests", investorHandler.SetInterests)
	mux.HandleFunc("PUT /api/investors/{id}/notifications", investorHandler.SetNotifications)

	// Stored submission images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	// CORS sits outside the chain so preflights skip rate limiting
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		MaxAge:         86400,
	})

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsMiddleware.Handler(wrapped),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
