package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/quest/internal/service"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uuid.UUID, expiresAt time.Time) string {
	t.Helper()
	claims := service.UserCredentialClaims{
		UserID:   userID,
		UserName: "ann",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// echoes the user id from the claims, or "anonymous"
func claimsHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := service.GetClaimsFromContext(r.Context())
	if !ok {
		w.Write([]byte("anonymous"))
		return
	}
	w.Write([]byte(claims.UserID.String()))
}

func TestJWTMiddleware(t *testing.T) {
	userID := uuid.New()
	handler := JWTMiddleware(testSecret, claimsHandler)

	tests := []struct {
		name       string
		prepare    func(r *http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "anonymous",
			prepare:    func(r *http.Request) {},
			wantStatus: http.StatusOK,
			wantBody:   "anonymous",
		},
		{
			name: "session cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{
					Name:  KeyJwtSessionCookieName,
					Value: signToken(t, testSecret, userID, time.Now().Add(time.Hour)),
				})
			},
			wantStatus: http.StatusOK,
			wantBody:   userID.String(),
		},
		{
			name: "bearer token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID, time.Now().Add(time.Hour)))
			},
			wantStatus: http.StatusOK,
			wantBody:   userID.String(),
		},
		{
			name: "expired token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID, time.Now().Add(-time.Hour)))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, "other", userID, time.Now().Add(time.Hour)))
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(r)
			w := httptest.NewRecorder()

			handler(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
