package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const dynastyIDKey contextKey = "dynasty_id"

// Authenticate verifies the Bearer token and stores the dynasty id from
// its claims in the request context.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			rawID, ok := claims["dynasty_id"].(float64)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithDynastyID(r.Context(), int(rawID))))
		})
	}
}

// WithDynastyID stores the dynasty id where DynastyIDFromContext finds it.
func WithDynastyID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, dynastyIDKey, id)
}

// DynastyIDFromContext returns the authenticated dynasty id.
func DynastyIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(dynastyIDKey).(int)
	return id, ok
}
