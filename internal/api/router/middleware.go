package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/samedayramps/app-samedayramps/internal/api/authctx"
	"github.com/samedayramps/app-samedayramps/internal/util"
)

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// JWTAuth validates the bearer token and loads the staff user into the
// request context.
func JWTAuth(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := util.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			user, err := util.GetUserFromToken(db, claims)
			if err != nil {
				unauthorized(w, "User not found")
				return
			}

			if !user.IsActive {
				unauthorized(w, "User account is inactive")
				return
			}

			next.ServeHTTP(w, r.WithContext(authctx.WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin rejects requests from non-admin users. It must run after
// JWTAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := authctx.UserFrom(r.Context())
		if !ok {
			unauthorized(w, "Not authenticated")
			return
		}
		if err := util.RequireAdmin(user); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
