package middleware

import (
	"context"
	"net/http"
	"strings"

	"pms/internal/domain/auth"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// Auth parses a bearer session token when present and stores its claims in
// the request context. Requests without a valid token pass through
// unauthenticated; handlers that need an identity check it themselves.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseSessionToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.SessionClaims, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.SessionClaims)
	return user, ok
}
