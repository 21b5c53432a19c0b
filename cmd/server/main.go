package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"swiftcart/internal/config"
	"swiftcart/internal/handlers"
	"swiftcart/internal/logger"
	"swiftcart/internal/order"
	"swiftcart/internal/routes"
	"swiftcart/internal/session"
	"swiftcart/internal/store"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Sync()
	log := logger.Log

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	cartStore, closer, err := store.Open(startCtx, cfg, logger.Named("store"))
	cancel()
	if err != nil {
		log.Fatal("❌ Impossible d'ouvrir le stockage du panier", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closer.Close()

	opts := []order.ClientOption{
		order.WithConfirmationPath(cfg.OrderConfirmationPath),
		order.WithLogger(logger.Named("order")),
	}
	if cfg.OrderServiceCookie != "" {
		opts = append(opts, order.WithCookie(cfg.OrderServiceCookie))
	}
	orders := order.NewClient(cfg.OrderServiceURL, opts...)

	hub := handlers.NewHub(cfg.CORSOrigins, logger.Named("ws"))
	defer hub.Close()

	if rs, ok := cartStore.(*store.RedisStore); ok {
		go func() {
			if err := rs.Watch(ctx, hub.StoreEvent); err != nil {
				log.Warn("⚠️ Synchronisation Redis indisponible", zap.Error(err))
			}
		}()
	}

	cart := session.New(ctx, session.Deps{
		Store:     cartStore,
		Service:   orders,
		Confirmer: orders,
		Presenter: session.Presenters{hub, session.LogPresenter{Log: logger.Named("cart")}},
		Logger:    logger.Named("session"),
	})

	r := routes.NewRouter(logger.Named("http"), cfg.CORSOrigins, handlers.NewCartHandler(cart, logger.Named("http")), hub)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Serveur panier lancé", zap.String("port", cfg.Port), zap.String("order_service", cfg.OrderServiceURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("🛑 Signal d'arrêt reçu")
	case err := <-errCh:
		log.Error("❌ Erreur serveur", zap.Error(err))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("⚠️ Arrêt forcé du serveur", zap.Error(err))
	}
}
