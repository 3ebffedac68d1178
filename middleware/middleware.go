package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/service"
)

const (
	KeyJwtSessionCookieName = "jwt_session"
)

var (
	errNoToken = errors.New("no session token")
)

// JWTMiddleware puts the session claims into the request context.
// Requests without a token pass through anonymously, requests with an
// invalid one are rejected.
func JWTMiddleware(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := extractToken(r)
		if errors.Is(err, errNoToken) {
			next(w, r)
			return
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			log.Debugf("rejected session token, %v", err)
			http.Error(w, "invalid or expired session", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), service.KeyCtxUserCredClaims, claims)
		next(w, r.WithContext(ctx))
	}
}

// ParseToken validates an HS256 token signed with secret
func ParseToken(secret, tokenString string) (service.UserCredentialClaims, error) {
	var claims service.UserCredentialClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return service.UserCredentialClaims{}, err
	}
	if !token.Valid {
		return service.UserCredentialClaims{}, fmt.Errorf("token is not valid")
	}
	return claims, nil
}

// cookie first, then the Authorization header
func extractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(KeyJwtSessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return token, nil
	}

	return "", errNoToken
}
