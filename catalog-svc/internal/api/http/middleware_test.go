package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "food-catalog/catalog-svc/internal/api/http"
	"food-catalog/catalog-svc/internal/auth"
	"food-catalog/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	s := newTestServer(t, httpapi.NewRateLimiter(0.001, 2))

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)

	rr := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestRateLimiter_KeysByPrincipal(t *testing.T) {
	s := newTestServer(t, httpapi.NewRateLimiter(0.001, 1))
	alice, err := s.tokens.Issue(auth.Principal{Subject: "alice"})
	require.NoError(t, err)
	bob, err := s.tokens.Issue(auth.Principal{Subject: "bob"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", alice, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodGet, "/health", alice, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", bob, nil).Code)
}

func TestAuthorize_UnnamedRouteFailsClosed(t *testing.T) {
	mw := &httpapi.Middleware{Gate: auth.NewGate(auth.DefaultPolicy()), Log: logger.NewNop()}
	called := false
	handler := mw.Authorize(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), &auth.Principal{Subject: "x", Scopes: []string{auth.ScopeRead}}))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	assert.False(t, called)
}

func TestAuthenticate_AttachesPrincipal(t *testing.T) {
	tokens := auth.NewTokens(testSecret, time.Hour)
	token, err := tokens.Issue(auth.Principal{Subject: "carol", Scopes: []string{auth.ScopeRead}})
	require.NoError(t, err)
	mw := &httpapi.Middleware{Tokens: tokens, Log: logger.NewNop()}

	var seen *auth.Principal
	handler := mw.Authenticate(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, "carol", seen.Subject)

	seen = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, seen)
}
