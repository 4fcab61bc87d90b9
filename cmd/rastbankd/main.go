package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rastbanken-backend/config"
	"rastbanken-backend/internal/api"
	"rastbanken-backend/internal/db"
	"rastbanken-backend/internal/ledger"
	"rastbanken-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "rastbanken ", log.LstdFlags)

	// .env is optional; it only exists on dev machines.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	if cfg.Seed.Classes {
		if err := db.SeedClasses(gormDB); err != nil {
			logger.Fatalf("failed to seed classes: %v", err)
		}
	}

	appStore := store.NewGormStore(gormDB)

	led := ledger.New(appStore)
	if err := led.Load(context.Background()); err != nil {
		logger.Fatalf("failed to load ledger: %v", err)
	}
	logger.Println("inventory ledger loaded")

	pins, err := api.NewPINGate(cfg.Admin.PINFile, cfg.Admin.DefaultPIN)
	if err != nil {
		logger.Fatalf("failed to initialize admin pin: %v", err)
	}

	router := api.NewRouter(led, pins, api.RouterOptions{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		CacheTTL:        cfg.Server.CacheTTL,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
