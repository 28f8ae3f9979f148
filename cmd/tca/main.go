package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/xw1nchester/tca-backend/internal/app"
	"github.com/xw1nchester/tca-backend/internal/config"
	"github.com/xw1nchester/tca-backend/internal/logging"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title						TCA API
// @version					1.0
// @description				Membership association backend: accounts, business profiles, directory and site content.
// @BasePath					/api
// @securityDefinitions.apikey	ApiKeyAuth
// @in							header
// @name						Authorization
// @description				Bearer access token
func main() {
	cfg := config.MustLoad()

	log, err := logging.New(cfg.Env)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, log, *cfg)
	if err != nil {
		log.Fatal("failed to init app", zap.Error(err))
	}

	go func() {
		if err := application.Run(); err != nil {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
