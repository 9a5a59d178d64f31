// Package main initializes and starts the records server, setting up
// configuration, logging, the database connection, repositories, services
// and HTTP handlers.
package main

import (
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/milrecord/milrecord/internal/config"
	"github.com/milrecord/milrecord/internal/db"
	"github.com/milrecord/milrecord/internal/logger"
	"github.com/milrecord/milrecord/internal/repository"
	"github.com/milrecord/milrecord/internal/server/handler/http"
	"github.com/milrecord/milrecord/internal/service"
	"github.com/milrecord/milrecord/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	printVersion, printDate := version, buildDate
	if printVersion == "" {
		printVersion = "N/A"
	}
	if printDate == "" {
		printDate = "N/A"
	}
	fmt.Printf("Build version: %s\n", printVersion)
	fmt.Printf("Build date: %s\n", printDate)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.DatabaseDSN == "" {
		zapLogger.Fatal("database DSN is required (-d or DATABASE_DSN)")
	}
	if options.JWTSecret == "" {
		zapLogger.Fatal("token signing secret is required (-s or JWT_SECRET)")
	}

	// Initialize the PostgreSQL connection and schema. An unreachable
	// store is fatal: the server must not begin accepting requests.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	usersRepo := repository.NewPostgresUsersRepository(postgresDB)
	servingRepo := repository.NewPostgresServingRepository(postgresDB)
	retiredRepo := repository.NewPostgresRetiredRepository(postgresDB)
	logisticsRepo := repository.NewPostgresLogisticsRepository(postgresDB)
	specsRepo := repository.NewPostgresSpecializationsRepository(postgresDB)
	statsRepo := repository.NewPostgresStatsRepository(postgresDB)

	// Initialize the token service and business-logic services.
	tokens := token.New(options.JWTSecret)
	authService := service.NewAuthService(usersRepo, tokens)
	usersService := service.NewUsersService(usersRepo)
	personnelService := service.NewPersonnelService(servingRepo, retiredRepo)
	logisticsService := service.NewLogisticsService(logisticsRepo, specsRepo)
	statsService := service.NewStatsService(statsRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}
	usersHandler := &http.UsersHandler{UsersService: usersService, Logger: zapLogger}
	personnelHandler := &http.PersonnelHandler{PersonnelService: personnelService, Logger: zapLogger}
	logisticsHandler := &http.LogisticsHandler{LogisticsService: logisticsService, Logger: zapLogger}
	statsHandler := &http.StatsHandler{StatsService: statsService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, usersHandler, personnelHandler,
		logisticsHandler, statsHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
