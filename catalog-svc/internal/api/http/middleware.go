package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"food-catalog/catalog-svc/internal/auth"
	"food-catalog/catalog-svc/internal/metrics"
	"food-catalog/logger"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// Middleware holds the request pipeline shared by every route.
type Middleware struct {
	Gate    *auth.Gate
	Tokens  *auth.Tokens
	Limiter *RateLimiter
	Log     *logger.Logger
}

// Authenticate attaches the bearer token's principal to the request. A
// missing or unusable token leaves the request anonymous; the gate decides
// whether that is acceptable.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || m.Tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := m.Tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			m.Log.Debug("bearer token rejected", "path", r.URL.Path, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// Authorize runs the gate for the matched route before the handler sees the
// request, so no body is read and no service is called on denial.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := auth.Operation(routeName(r))
		principal := auth.FromContext(r.Context())
		if err := m.Gate.Check(principal, op); err != nil {
			reason := "forbidden"
			if principal == nil {
				reason = "unauthenticated"
			}
			metrics.RecordAuthDenial(string(op), reason)
			m.Log.Info("request denied", "operation", op, "reason", reason)
			writeError(w, m.Log, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Observe records request metrics and one log line per request.
func (m *Middleware) Observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.IncrementInFlight()
		defer metrics.DecrementInFlight()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, routeTemplate(r), strconv.Itoa(rw.status), duration)
		m.Log.Info("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", duration.Milliseconds(),
		)
	})
}

func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	if m.Limiter == nil {
		return next
	}
	return m.Limiter.Handler(next)
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// RateLimiter keeps one token bucket per principal, or per remote address
// for anonymous callers.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.limiters[key]
	if !ok {
		// TODO: evict idle limiters once anonymous traffic makes the map grow unbounded.
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if p := auth.FromContext(r.Context()); p != nil {
			key = "sub:" + p.Subject
		}
		if !rl.limiter(key).Allow() {
			w.Header().Set("Retry-After", "1")
			writeProblem(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, retry later", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
