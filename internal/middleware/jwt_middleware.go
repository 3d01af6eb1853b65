package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/AzmainZaman/CSE470-Project/internal/utils"
)

type contextKey string

const ContextUserEmail contextKey = "user_email"

// UserEmail pulls the authenticated email out of a request context.
func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(ContextUserEmail).(string)
	return email
}

func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			utils.JSONError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := utils.ParseJWT(tokenStr)
		if err != nil {
			utils.JSONError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserEmail, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
