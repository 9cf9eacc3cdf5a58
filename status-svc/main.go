package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food-catalog/config"
	"food-catalog/logger"
	"food-catalog/status-svc/internal/service"
	"food-catalog/status-svc/internal/storage"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	lg, err := logger.New(cfg.LogMode, "status-svc")
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()
	store := storage.NewStore(rdb)

	reader := config.NewKafkaReader(cfg, cfg.LifecycleTopic, cfg.StatusGroupID)
	defer reader.Close()

	consumer := service.NewConsumer(reader, store, lg.Component("consumer"))
	go consumer.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		lg.Info("Status Service starting", "addr", cfg.HTTPAddr, "topic", cfg.LifecycleTopic)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

type openLister interface {
	OpenRestaurants(ctx context.Context) ([]string, error)
}

func newRouter(store openLister) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"service":   "status-svc",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)
	r.HandleFunc("/restaurants/open", func(w http.ResponseWriter, r *http.Request) {
		codes, err := store.OpenRestaurants(r.Context())
		if err != nil {
			http.Error(w, "status projection unavailable", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"codes": codes})
	}).Methods(http.MethodGet)
	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
