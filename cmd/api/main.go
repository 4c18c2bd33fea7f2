package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tomlord1122/assignment-tracker/internal/database"
	"github.com/Tomlord1122/assignment-tracker/internal/env"
	"github.com/Tomlord1122/assignment-tracker/internal/export"
	"github.com/Tomlord1122/assignment-tracker/internal/reminder"
	"github.com/Tomlord1122/assignment-tracker/internal/repository"
	"github.com/Tomlord1122/assignment-tracker/internal/server"
	"github.com/Tomlord1122/assignment-tracker/internal/service"
)

func gracefulShutdown(apiServer *http.Server, clock *reminder.Clock, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	slog.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has 5 seconds to finish the request it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	// Stop scanning before the store goes away.
	clock.Stop()

	slog.Info("closing store")
	if err := dbService.Close(); err != nil {
		slog.Error("error closing store", "error", err)
	}

	slog.Info("server exiting")
	done <- true
}

func newDispatcher(cfg env.ReminderConfig, logger *slog.Logger) reminder.Dispatcher {
	if !cfg.Desktop && !cfg.Sound {
		return reminder.NewLogDispatcher(logger)
	}
	return reminder.NewDesktopDispatcher(cfg.Desktop, cfg.Sound, logger)
}

func main() {
	env.Init()
	cfg := env.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// 1. Open the store
	dbService, err := database.New(cfg.Store, logger)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	// 2. Hydrate the lists
	taskService := service.NewTaskService(ctx, repository.NewTaskRepository(dbService, logger), logger)
	assignmentService := service.NewAssignmentService(ctx, repository.NewAssignmentRepository(dbService, logger), time.Now, logger)

	// 3. Start reminders: one scan now, then every interval
	scanner := reminder.NewScanner(assignmentService, newDispatcher(cfg.Reminder, logger),
		cfg.Reminder.Window, cfg.Reminder.Location, logger.With("component", "reminder"))
	clock := reminder.NewClock(scanner.Scan, cfg.Reminder.Interval, time.Now, logger)
	clock.Start(ctx)

	// 4. HTTP API
	apiServer := server.NewServer(cfg.Port, server.Deps{
		Tasks:       taskService,
		Assignments: assignmentService,
		Exporter:    export.NewExporter(taskService, assignmentService),
		DB:          dbService,
		Logger:      logger,
	})

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, clock, dbService, done)

	slog.Info("starting server", "addr", apiServer.Addr, "env", cfg.AppEnv)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("HTTP server ListenAndServe error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("graceful shutdown complete")
}
