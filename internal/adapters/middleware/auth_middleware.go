package middleware

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// AuthMiddleware validates RS256 session tokens and gates routes by role.
// Beyond the signature check it requires the session to still be live in the
// cache, so a signed-out token is rejected before its exp claim would.
type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	sessions  ports.SessionCache
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, sessions ports.SessionCache) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		sessions:  sessions,
	}
}

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	RoleKey     contextKey = "role"
	UsernameKey contextKey = "username"
	TokenKey    contextKey = "token"
)

// RequireRole admits only callers whose resolved role is in roles. The role
// claim was stamped at sign-in after the approval gate, so a token can never
// carry an unapproved admin role.
func (m *AuthMiddleware) RequireRole(roles []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil || !token.Valid {
			log.Printf("auth: token rejected: %v", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			http.Error(w, "invalid token: missing user ID", http.StatusUnauthorized)
			return
		}

		userRole, ok := claims["role"].(string)
		if !ok || userRole == "" {
			http.Error(w, "invalid token: missing role", http.StatusUnauthorized)
			return
		}

		// Signed-out sessions are gone from the cache even if the token
		// has not expired yet.
		sum := sha256.Sum256([]byte(tokenString))
		n, err := m.sessions.Exists(r.Context(), "session:"+hex.EncodeToString(sum[:])).Result()
		if err != nil {
			log.Printf("auth: session lookup failed: %v", err)
			http.Error(w, "session check failed", http.StatusInternalServerError)
			return
		}
		if n == 0 {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}

		allowed := false
		for _, role := range roles {
			if userRole == role {
				allowed = true
				break
			}
		}
		if !allowed {
			log.Printf("auth: role %s not allowed, need one of %v", userRole, roles)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		username, _ := claims["username"].(string)

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, RoleKey, userRole)
		ctx = context.WithValue(ctx, UsernameKey, username)
		ctx = context.WithValue(ctx, TokenKey, tokenString)

		next(w, r.WithContext(ctx))
	}
}
