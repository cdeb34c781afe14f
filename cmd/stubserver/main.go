// Command stubserver runs the in-memory invoice backend for local
// development: the same paths and envelope as production, no database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/invogen/invogen-client/internal/config"
	"github.com/invogen/invogen-client/internal/logger"
	"github.com/invogen/invogen-client/internal/session"
	"github.com/invogen/invogen-client/internal/stubserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger.InitLogger(cfg.Stage)
	defer func() { _ = logger.Sync() }()

	port := os.Getenv("STUBSERVER_PORT")
	if port == "" {
		port = "8000"
	}

	user := session.User{
		ID:           cfg.UserID,
		Name:         cfg.UserName,
		Email:        cfg.UserEmail,
		BusinessName: cfg.BusinessName,
		Address:      cfg.Address,
		PhoneNumber:  cfg.PhoneNumber,
	}
	srv := stubserver.New(user, logger.Log)

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("stub backend listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down stub backend")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
