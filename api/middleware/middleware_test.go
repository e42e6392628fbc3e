package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"storefront_server/config"
	"storefront_server/lib"
	"storefront_server/structs"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fakeCounter struct {
	counts map[string]int
	err    error
}

func (f *fakeCounter) IncrementRateLimit(_ context.Context, ip, endpoint string, _ time.Duration) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[ip+":"+endpoint]++
	return f.counts[ip+":"+endpoint], nil
}

func newTestMiddleware(counter RateCounter) *Middleware {
	cfg := config.Load()
	cfg.Auth.AccessTokenSecret = testSecret
	cfg.RateLimit = &structs.RateLimitConfig{
		Enabled:         true,
		DashboardLimit:  2,
		DashboardWindow: time.Minute,
		GeneralLimit:    5,
		GeneralWindow:   time.Minute,
	}
	return NewMiddleware(cfg, gecho.NewDefaultLogger(), counter)
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func token(t *testing.T, verified bool, exp time.Time) string {
	t.Helper()
	tok, err := lib.SignToken(structs.AuthClaims{Sub: "user-1", Email: "admin@example.com", Verified: verified, Exp: exp}, testSecret)
	require.NoError(t, err)
	return tok
}

func TestSessionMiddleware(t *testing.T) {
	mw := newTestMiddleware(nil)
	var seen *structs.AuthClaims
	handler := mw.SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		auth   func(*http.Request)
		status int
	}{
		{"missing", func(*http.Request) {}, http.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"expired", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, true, time.Now().Add(-time.Minute)))
		}, http.StatusUnauthorized},
		{"unverified", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, false, time.Now().Add(time.Hour)))
		}, http.StatusForbidden},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, true, time.Now().Add(time.Hour)))
		}, http.StatusNoContent},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: token(t, true, time.Now().Add(time.Hour))})
		}, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/dashboard/categories", nil)
			tc.auth(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "user-1", seen.Sub)
			}
		})
	}
}

func TestRateLimit_DashboardLimit(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{}}
	handler := newTestMiddleware(counter).RateLimitMiddleware()(ok)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/categories", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// the storefront has its own budget
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	handler := newTestMiddleware(&fakeCounter{err: errors.New("redis: connection refused")}).RateLimitMiddleware()(ok)

	for range 5 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/dashboard/categories/1", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestRateLimit_SkipsHealth(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int{}}
	handler := newTestMiddleware(counter).RateLimitMiddleware()(ok)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/server", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, counter.counts)
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMiddleware(nil).SecurityHeaders()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
