package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"bus-tracker/internal/tracker-service/adapters/driver/myhttp/handle"

	"github.com/golang-jwt/jwt"
)

type AuthMiddleware struct {
	accessSecret string
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		accessSecret: accessSecret,
	}
}

// ParseUserClaims validates the token and returns the user uid and role.
func ParseUserClaims(accessSecret, tokenString string) (string, string, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(accessSecret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse JWT token")
	}

	if !token.Valid {
		return "", "", fmt.Errorf("invalid JWT token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", fmt.Errorf("user id not found in token")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return "", "", fmt.Errorf("role not found in token")
	}

	return userID, role, nil
}

// Wrap enforces a valid token and forwards identity via headers.
func (am *AuthMiddleware) Wrap(next http.Handler) http.Handler {
	return am.WrapRole("", next)
}

// WrapRole additionally restricts the route to one role. Empty role means
// any authenticated user.
func (am *AuthMiddleware) WrapRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get("Authorization")
		if tokenString == "" {
			handle.JsonError(w, http.StatusUnauthorized, fmt.Errorf("empty JWT token"))
			return
		}

		userID, userRole, err := ParseUserClaims(am.accessSecret, tokenString)
		if err != nil {
			handle.JsonError(w, http.StatusUnauthorized, err)
			return
		}

		if role != "" && userRole != role {
			handle.JsonError(w, http.StatusForbidden, fmt.Errorf("only %s role is allowed to use this endpoint", role))
			return
		}

		r.Header.Set("X-UserId", userID)
		r.Header.Set("X-UserRole", userRole)

		next.ServeHTTP(w, r)
	})
}
