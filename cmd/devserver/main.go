// Command devserver runs the in-memory storefront backend stub so the
// checkout flow has something real to talk to during development.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/stubserver"
	"github.com/theabhishek-hub/ecommerce-storefront/pkg/logger"
)

type Config struct {
	HTTPPort        string
	GatewayEnabled  bool
	GatewayKeyID    string
	GatewaySecret   string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		GatewayEnabled:  getEnv("GATEWAY_ENABLED", "true") == "true",
		GatewayKeyID:    getEnv("GATEWAY_KEY_ID", "rzp_test_stub"),
		GatewaySecret:   getEnv("GATEWAY_SECRET", "stub-secret"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	slogger, err := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}

	stub := stubserver.New(stubserver.Config{
		GatewayEnabled: cfg.GatewayEnabled,
		GatewayKeyID:   cfg.GatewayKeyID,
		GatewaySecret:  cfg.GatewaySecret,
	}, slogger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      stub.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slogger.Info("dev server starting", "port", cfg.HTTPPort, "gateway_enabled", cfg.GatewayEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	slogger.Info("server exited")
}
