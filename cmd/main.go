// Package main provides the entry point for the YouTube agent service.
// @title YouTube Agent API
// @version 1.0
// @description Routes conversion requests across third-party donors and returns direct download links.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

// @securityDefinitions.apikey AgentKeyAuth
// @in header
// @name X-Agent-Key
// @description Shared agent secret

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/denisAlshanov/ytagent/docs" // Import for swagger docs
	"github.com/denisAlshanov/ytagent/internal/api/handlers"
	"github.com/denisAlshanov/ytagent/internal/api/router"
	"github.com/denisAlshanov/ytagent/internal/config"
	"github.com/denisAlshanov/ytagent/internal/services/dispatcher"
	"github.com/denisAlshanov/ytagent/internal/services/donor"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	utils.ConfigureLogger(cfg.Log.Level)
	logger := utils.GetLogger()
	logger.Info("Starting YouTube agent service")

	// Build the donor set and the dispatcher that owns the round robin counter
	donors := donor.NewDonors(&cfg.Donors)
	dispatch, err := dispatcher.New(donors...)
	if err != nil {
		logger.Fatalf("Failed to initialize dispatcher: %v", err)
	}
	logger.WithField("donors", dispatch.Donors()).Info("Donors configured")

	// Initialize handlers
	agentHandler := handlers.NewAgentHandler(dispatch)
	healthHandler := handlers.NewHealthHandler(dispatch)

	// Initialize router
	r := router.NewRouter(cfg, agentHandler, healthHandler)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: r.Handler(),
	}

	// Start server
	go func() {
		logger.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// In-flight donor polls get the shutdown timeout to finish
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server shutdown complete")
}
