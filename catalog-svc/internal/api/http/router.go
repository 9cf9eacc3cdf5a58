package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires routes and the middleware chain. Middleware only runs for
// matched routes, so the route name is always available to Authorize.
func NewRouter(handler *Handler, mw *Middleware) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	r.Use(mw.Observe, mw.Authenticate, mw.RateLimit, mw.Authorize)
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
