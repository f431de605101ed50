// Package main initializes and starts the taskfolio HTTP server, setting up
// configuration, logging, database and session store connections,
// repositories, services, handlers, and routing.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mkudelin/taskfolio/internal/config"
	"github.com/mkudelin/taskfolio/internal/db"
	"github.com/mkudelin/taskfolio/internal/logger"
	"github.com/mkudelin/taskfolio/internal/repository"
	"github.com/mkudelin/taskfolio/internal/server/handler/http"
	"github.com/mkudelin/taskfolio/internal/service"
	"github.com/mkudelin/taskfolio/internal/session"
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

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Connect to the Redis instance holding auth sessions.
	redisClient := redis.NewClient(&redis.Options{Addr: options.RedisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		zapLogger.Fatal("cannot reach redis", zap.Error(err))
	}
	sessions := session.NewRedisStore(redisClient)

	// Initialize the owner-scoped entity repositories.
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)
	projectRepo := repository.NewPostgresProjectRepository(postgresDB)
	areaRepo := repository.NewPostgresAreaRepository(postgresDB)
	dailyLogRepo := repository.NewPostgresDailyLogRepository(postgresDB)
	settingsRepo := repository.NewPostgresSettingsRepository(postgresDB)

	// The federated search fans out to all four entity repositories.
	searchService := service.NewSearchService(taskRepo, projectRepo, areaRepo, dailyLogRepo)

	// Create the HTTP handlers.
	tasksHandler := &http.TasksHandler{Tasks: taskRepo, Logger: zapLogger}
	projectsHandler := &http.ProjectsHandler{Projects: projectRepo, Tasks: taskRepo, Logger: zapLogger}
	areasHandler := &http.AreasHandler{Areas: areaRepo, Tasks: taskRepo, Projects: projectRepo, Logger: zapLogger}
	dailyLogHandler := &http.DailyLogHandler{Logs: dailyLogRepo, Logger: zapLogger}
	settingsHandler := &http.SettingsHandler{Settings: settingsRepo, Logger: zapLogger}
	searchHandler := &http.SearchHandler{Search: searchService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(tasksHandler, projectsHandler, areasHandler,
		dailyLogHandler, settingsHandler, searchHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
