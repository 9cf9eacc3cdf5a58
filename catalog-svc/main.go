package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "food-catalog/catalog-svc/internal/api/http"
	"food-catalog/catalog-svc/internal/auth"
	"food-catalog/catalog-svc/internal/service"
	"food-catalog/catalog-svc/internal/storage"
	"food-catalog/config"
	"food-catalog/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	lg, err := logger.New(cfg.LogMode, "catalog-svc")
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore := openStore(ctx, cfg, lg)
	defer closeStore()

	var cache service.RestaurantCache
	if cfg.RedisEnabled() {
		rdb := config.MustInitRedis(cfg)
		defer rdb.Close()
		cache = storage.NewRedisCache(rdb, cfg.CacheTTL)
	}

	var publisher service.LifecyclePublisher
	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg, cfg.LifecycleTopic)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	}

	photos, err := storage.NewLocalPhotoStorage(cfg.UploadDir)
	if err != nil {
		lg.Fatal("photo storage unavailable", "dir", cfg.UploadDir, "error", err)
	}

	qr := service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}
	handler := httpapi.NewHandler(
		service.NewRestaurantService(store, cache, publisher, qr, lg.Component("restaurants")),
		service.NewKitchenService(store, cache, lg.Component("kitchens")),
		service.NewProductService(store, photos, lg.Component("products")),
		lg,
	)
	mw := &httpapi.Middleware{
		Gate:    auth.NewGate(auth.DefaultPolicy()),
		Tokens:  auth.NewTokens(cfg.JWTSecret, time.Hour),
		Limiter: httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Log:     lg.Component("http"),
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler, mw))
	go func() {
		lg.Info("Catalog Service starting", "addr", cfg.HTTPAddr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", "error", err)
	}
	lg.Info("Catalog Service stopped")
}

func openStore(ctx context.Context, cfg config.Config, lg *logger.Logger) (service.Store, func()) {
	if cfg.Store == "memory" {
		mem := storage.NewMemoryStore()
		mem.SeedDefaults()
		lg.Warn("using in-memory store, data is lost on restart")
		return mem, func() {}
	}

	db := config.MustInitPostgres(cfg)
	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		lg.Fatal("schema setup failed", "error", err)
	}
	return repo, func() { db.Close() }
}
