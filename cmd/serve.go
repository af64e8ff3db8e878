package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"analysis/toolutil/internal/handler"
	"analysis/toolutil/internal/service"
	"analysis/toolutil/internal/store"
	"analysis/toolutil/internal/tmpdir"
	jwtpkg "analysis/toolutil/pkg/jwt"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway in front of the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg, logger := a.cfg, a.logger

	// 1. Connect to the store
	conn, err := store.Open(ctx, cfg.Store.Host, cfg.Store.Port, cfg.Store.Password)
	if err != nil {
		logger.Error("failed to connect to store", zap.Error(err))
		return err
	}
	defer conn.Close()
	logger.Info("connected to store",
		zap.String("addr", conn.Addr()),
		zap.Int("db", conn.DB()),
		zap.Bool("authenticated", conn.Authenticated()),
	)

	// 2. Services and handlers
	queueService := service.NewQueueService(conn, tmpdir.New())
	queueHandler := handler.NewQueueHandler(queueService)

	var jwtManager *jwtpkg.Manager
	if cfg.Auth.SigningKey != "" {
		jwtManager = jwtpkg.NewManager(cfg.Auth.SigningKey, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		logger.Info("bearer auth enabled", zap.String("issuer", cfg.Auth.Issuer))
	}

	// 3. Router and HTTP server
	router := handler.SetupRouter(cfg, logger, jwtManager, queueHandler)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 4. Wait for interrupt signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
		return err
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("server exited gracefully")
	return nil
}
