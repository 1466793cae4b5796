package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"users-api/config"
	"users-api/internal/handlers"
	"users-api/internal/repositories"
	"users-api/internal/services"
	"users-api/internal/utils"
	"users-api/internal/wsnotify"
)

// @title Users API
// @version 1.0
// @description Create, read, update and delete users
// @BasePath /api
func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Logger.Fatalf("Error loading config: %v", err)
	}
	if err := utils.ConfigureLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout); err != nil {
		utils.Logger.Fatalf("Error configuring logger: %v", err)
	}

	ctx := context.Background()

	db, err := config.ConnectDatabase(ctx, &cfg.Database)
	if err != nil {
		utils.Logger.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	userRepository := repositories.NewSQLUserRepository(db)
	if err := userRepository.EnsureSchema(ctx, cfg.Database.Driver); err != nil {
		utils.Logger.Fatalf("Error preparing schema: %v", err)
	}

	hub := wsnotify.NewHub()
	userService := services.NewUserService(userRepository, hub)
	userHandler := handlers.NewUserHandler(userService)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.NewRouter(userHandler, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		utils.LogInfo("Server is running on %s (driver %s)", cfg.Addr, cfg.Database.Driver)
		utils.LogInfo("Swagger UI available at /swagger/index.html")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatalf("Error starting server: %v", err)
		}
	}()

	<-stop
	utils.LogInfo("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogError("Error shutting down server: %v", err)
	}
	// Hijacked websocket connections are not closed by Shutdown.
	hub.CloseAll()

	utils.LogInfo("Server stopped successfully")
}
