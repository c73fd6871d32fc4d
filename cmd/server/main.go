/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the call billing HTTP server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, BILLING_* environment, then flags)
  2. Build the zap logger
  3. Load the tariff (default or JSON file)
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: BILLING_PORT or 8080)
  -tariff  JSON tariff file (default: BILLING_TARIFF_FILE, else built-in)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (BILLING_SHUTDOWN_TIMEOUT)
  3. Flush logs and exit

EXAMPLES:
  ./server
  ./server -port=3000 -tariff=./tariff.json
  BILLING_LOG_LEVEL=debug ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/call-billing/api"
	"github.com/warp/call-billing/config"
	"github.com/warp/call-billing/factory"
	"github.com/warp/call-billing/logging"
	"github.com/warp/call-billing/tariff"
)

func main() {
	cfg := config.Load()

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	tariffFile := flag.String("tariff", cfg.TariffFile, "JSON tariff file (empty uses the default tariff)")
	flag.Parse()

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	t := tariff.DefaultTariff()
	if *tariffFile != "" {
		t, err = factory.NewTariffFactory().LoadTariff(*tariffFile)
		if err != nil {
			logger.Fatal("Failed to load tariff", zap.String("file", *tariffFile), zap.Error(err))
		}
	}

	handler := api.NewHandler(t, logger)
	router := api.NewRouter(handler, api.RouterConfig{RateLimit: cfg.RateLimit})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting",
			zap.Int("port", *port),
			zap.String("env", cfg.Env),
			zap.Any("tariff", factory.ToJSON(t)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}
