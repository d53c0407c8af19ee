package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerce-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("OPTIONS request", func(t *testing.T) {
		w := httptest.NewRecorder()
		CORS("", next).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/query", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	})

	t.Run("Configured origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		CORS("https://shop.example.com", next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/query", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Missing token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		AuthMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/query", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		AuthMiddleware(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token", func(t *testing.T) {
		token := signedToken(t, "test-secret", jwt.MapClaims{
			"user_id": float64(1),
			"role":    "user",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, "user", utils.GetUserRoleFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Expired token", func(t *testing.T) {
		token := signedToken(t, "test-secret", jwt.MapClaims{
			"user_id": float64(1),
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		AuthMiddleware(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		AuthMiddleware(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Strict tier exhausts burst", func(t *testing.T) {
		rl := NewRateLimiter()
		defer rl.Stop()
		handler := rl.Middleware(ok)

		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/query", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			req.Header.Set("X-Action", "auth")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusTooManyRequests, codes[burstStrict])
	})

	t.Run("Users have separate buckets", func(t *testing.T) {
		rl := NewRateLimiter()
		defer rl.Stop()
		handler := rl.Middleware(ok)

		for i := 0; i < burstStrict; i++ {
			req := httptest.NewRequest(http.MethodPost, "/query", nil)
			req.Header.Set("X-Action", "auth")
			req = req.WithContext(utils.SetUserContext(req.Context(), 1, "user"))
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodPost, "/query", nil)
		req.Header.Set("X-Action", "auth")
		req = req.WithContext(utils.SetUserContext(req.Context(), 2, "user"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Idle visitors are evicted", func(t *testing.T) {
		rl := NewRateLimiter()
		defer rl.Stop()

		rl.limiterFor("ip:10.0.0.2:general", limitGeneral, burstGeneral)
		rl.evictIdle(time.Now().Add(visitorTTL + time.Second))

		rl.mu.Lock()
		defer rl.mu.Unlock()
		assert.Empty(t, rl.visitors)
	})
}

func TestResolveRateTier(t *testing.T) {
	t.Setenv("INTERNAL_SECRET_KEY", "svc-key")

	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{name: "internal", header: "X-Service-Auth", value: "svc-key", want: "internal"},
		{name: "strict", header: "X-Action", value: "auth", want: "strict"},
		{name: "frontend", header: "X-Client-Type", value: "frontend-heavy", want: "frontend"},
		{name: "general", want: "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/query", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			_, _, tier := resolveRateTier(req)
			assert.Equal(t, tt.want, tier)
		})
	}
}
