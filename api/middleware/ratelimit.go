package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// limitFor picks the limit for a path: dashboard routes share the stricter one.
func (mw *Middleware) limitFor(path string) (string, int, time.Duration) {
	if strings.HasPrefix(path, "/dashboard") {
		return "dashboard", mw.cfg.RateLimit.DashboardLimit, mw.cfg.RateLimit.DashboardWindow
	}
	return "general", mw.cfg.RateLimit.GeneralLimit, mw.cfg.RateLimit.GeneralWindow
}

// clientIP relies on chi's RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware counts requests per client in fixed windows. Counter
// failures let the request through.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled || mw.counter == nil {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" || strings.HasPrefix(r.URL.Path, "/storage/") {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			group, limit, window := mw.limitFor(r.URL.Path)

			count, err := mw.counter.IncrementRateLimit(r.Context(), ip, group, window)
			if err != nil {
				mw.logger.Warn("Rate limit counter unavailable, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", ip),
					gecho.Field("group", group),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, limit-count)))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", ip),
					gecho.Field("group", group),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				gecho.TooManyRequests(w,
					gecho.WithMessage("Rate limit exceeded. Please try again later"),
					gecho.WithData(map[string]any{"limit": limit, "retry_after": int(window.Seconds())}),
					gecho.Send(),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
