package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/atlas-commerce/atlas-commerce/internal/platform/httpx"
)

type contextKey struct{}

var claimsKey contextKey

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	Logger  *slog.Logger
	Issuer  *TokenIssuer
	Revoked *RevocationStore
}

// Require rejects requests without a valid, unrevoked bearer token and
// stores the verified claims in the request context.
func (m Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}

		claims, ok := m.Issuer.Verify(token)
		if !ok {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired token")
			return
		}

		if m.Revoked != nil {
			revoked, err := m.Revoked.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("revocation lookup failed", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "revocation lookup failed")
				return
			}
			if revoked {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "token has been revoked")
				return
			}
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the claims stored by Require.
func ClaimsFromContext(ctx context.Context) (TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(TokenClaims)
	return claims, ok
}

// ContextWithClaims stores claims in a context. Used by tests to call
// protected handlers directly.
func ContextWithClaims(ctx context.Context, claims TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
