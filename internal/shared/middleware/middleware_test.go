package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"totem/internal/shared/config"
)

func protectedRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/protected", OperatorAuth(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestOperatorAuth(t *testing.T) {
	cfg := config.Load()
	cfg.JWT.Secret = "test-secret"
	engine := protectedRouter(t, cfg)

	operatorClaims := jwt.MapClaims{
		"type": "operator",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", operatorClaims), http.StatusUnauthorized},
		{"expired token", "Bearer " + signToken(t, cfg.JWT.Secret, jwt.MapClaims{
			"type": "operator",
			"exp":  time.Now().Add(-time.Hour).Unix(),
		}), http.StatusUnauthorized},
		{"wrong token type", "Bearer " + signToken(t, cfg.JWT.Secret, jwt.MapClaims{
			"type": "visitor",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}), http.StatusUnauthorized},
		{"valid operator token", "Bearer " + signToken(t, cfg.JWT.Secret, operatorClaims), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
