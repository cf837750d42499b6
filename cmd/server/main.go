package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/usmm07/foodcourt/internal/app"
	"github.com/usmm07/foodcourt/internal/config"
	"github.com/usmm07/foodcourt/internal/httpapi"
	"github.com/usmm07/foodcourt/internal/seed"
	"github.com/usmm07/foodcourt/internal/storage/postgres"
	"github.com/usmm07/foodcourt/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewDefault("server").WithError(err).Fatal("load config")
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}).Named("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stores app.Stores
	if cfg.Database.DSN != "" {
		db, err := postgres.Open(ctx, cfg.Database.DSN)
		if err != nil {
			log.WithError(err).Fatal("connect postgres")
		}
		defer db.Close()

		if err := postgres.Migrate(db); err != nil {
			log.WithError(err).Fatal("run migrations")
		}

		store := postgres.New(db)
		stores = app.Stores{Users: store, Catalog: store, Carts: store, Orders: store}
		log.Info("using postgres storage")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	application := app.New(httpapi.Config{
		BotToken:       cfg.Telegram.BotToken,
		AuthTTL:        cfg.Telegram.AuthTTL,
		SkipAuthCheck:  cfg.Telegram.SkipAuthCheck,
		AllowedOrigins: cfg.AllowedOrigins(),
	}, stores, log)

	if cfg.Seed.DemoData {
		if err := seed.Run(ctx, application.Stores.Users, application.Stores.Catalog, log.Named("seed")); err != nil {
			log.WithError(err).Fatal("seed demo data")
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      application.HTTP.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}
