package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "libris-backend/internal/api/http"
	"libris-backend/internal/config"
	"libris-backend/internal/logger"
	"libris-backend/internal/repository/postgres"
	"libris-backend/internal/security"
	"libris-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Libris Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Borrowing policy", "fine_per_day", cfg.Policy.FinePerDay, "grace_period_days", cfg.Policy.GracePeriodDays, "max_books_per_user", cfg.Policy.MaxBooksPerUser)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMW := httpapi.NewAuthMiddleware(tokenManager)

	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository, store.LoanRepository)
	bookSvc := service.NewBookService(store.BookRepository, store.LoanRepository)
	categorySvc := service.NewCategoryService(store.CategoryRepository)
	statsSvc := service.NewStatsService(store.StatsRepository)
	loanSvc := service.NewLoanService(
		store.LoanRepository,
		store.BookRepository,
		store.UserRepository,
		service.LoanPolicy{
			FinePerDay:      cfg.FinePerDay(),
			GracePeriodDays: cfg.Policy.GracePeriodDays,
			MaxBooksPerUser: cfg.Policy.MaxBooksPerUser,
		},
	)

	handlers := &httpapi.Handlers{
		Auth:     httpapi.NewAuthHandler(authSvc),
		User:     httpapi.NewUserHandler(userSvc, cfg.Policy.ItemsPerPage),
		Book:     httpapi.NewBookHandler(bookSvc, cfg.Policy.ItemsPerPage),
		Category: httpapi.NewCategoryHandler(categorySvc),
		Loan:     httpapi.NewLoanHandler(loanSvc, cfg.Policy.ItemsPerPage),
		Stats:    httpapi.NewStatsHandler(statsSvc),
	}

	router := httpapi.NewRouter(handlers, authMW)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
