package middleware

import (
	"net/http"
	"strings"

	"github.com/baharkarakas/payment-reconciler/internal/api/httpx"
	"github.com/baharkarakas/payment-reconciler/internal/auth"
)

// Auth requires "Authorization: Bearer <jwt>" issued by tm and puts the
// token's client id on the request context.
func Auth(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if len(ah) < 7 || !strings.EqualFold(ah[:7], "bearer ") {
				httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "missing bearer token", nil)
				return
			}
			claims, err := tm.Parse(strings.TrimSpace(ah[7:]))
			if err != nil {
				httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "invalid token", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), claims.ClientID)))
		})
	}
}
