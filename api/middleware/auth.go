package middleware

import (
	"context"
	"errors"
	"net/http"
	"storefront_server/lib"
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// SessionMiddleware admits requests carrying a valid session token for a
// verified email address. Tokens are issued by the identity service; this
// server only verifies them.
func (mw *Middleware) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := lib.ExtractClaims(r, mw.cfg.Auth.AccessCookieName, mw.cfg.Auth.AccessTokenSecret)
		if err != nil {
			message := "Invalid or missing access token"
			if errors.Is(err, lib.ErrExpiredToken) {
				message = "Your session has expired. Please sign in again"
			}
			mw.logger.Debug("Rejected dashboard request", gecho.Field("error", err), gecho.Field("path", r.URL.Path))
			gecho.Unauthorized(w, gecho.WithMessage(message), gecho.Send())
			return
		}

		if !claims.Verified {
			mw.logger.Warn("Unverified user attempted to access the dashboard", gecho.Field("user_id", claims.Sub))
			gecho.Forbidden(w, gecho.WithMessage("Please verify your email address first"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext returns the session claims stored by SessionMiddleware.
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}
