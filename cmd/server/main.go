package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/linemk/shop-cart/internal/app"
	"github.com/linemk/shop-cart/internal/config"
	"github.com/linemk/shop-cart/internal/lib/logger"
	"github.com/linemk/shop-cart/internal/service"
	"github.com/linemk/shop-cart/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(ctx, log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Close()

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB.DB)
	catalogRepo := storage.NewCatalogRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB.DB)
	lineRepo := storage.NewCartLineRepository(application.DB.DB)

	authService := service.NewAuthService(log, userRepo, cfg.JWT.Secret, cfg.JWT.TTL())
	catalogService := service.NewCatalogService(log, catalogRepo, lineRepo)
	cartService := service.NewCartService(log, application.DB.DB, userRepo, catalogRepo, orderRepo, lineRepo)

	router := newRouter(log, cfg.JWT.Secret, authService, catalogService, cartService)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	log.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", errors.Wrap(err, "shutdown")))
		return
	}
	log.Info("server gracefully stopped")
}
