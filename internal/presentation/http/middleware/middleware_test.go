package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/config"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		scope := ScopeFrom(c)
		c.JSON(http.StatusOK, gin.H{"actor_id": scope.ActorID, "actor_type": scope.ActorType})
	})
	r.GET("/", handlers...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", "test", time.Hour)
	storeToken, err := jwtManager.GenerateAccessToken(uuid.New(), enum.ActorTypeStore.String(), "anna@ajj.test")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	adminToken, err := jwtManager.GenerateAccessToken(uuid.New(), enum.ActorTypeAdmin.String(), "owner@ajj.test")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	bogusType, err := jwtManager.GenerateAccessToken(uuid.New(), "cashier", "x@ajj.test")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	foreign, err := utils.NewJWTManager("other-secret", "test", time.Hour).GenerateAccessToken(uuid.New(), "admin", "x@ajj.test")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	tests := []struct {
		name   string
		guard  gin.HandlerFunc
		token  string
		status int
	}{
		{"missing header", nil, "", http.StatusUnauthorized},
		{"wrong signature", nil, foreign, http.StatusUnauthorized},
		{"unknown actor type", nil, bogusType, http.StatusUnauthorized},
		{"store token", nil, storeToken, http.StatusOK},
		{"admin route as store", RequireAdmin(), storeToken, http.StatusForbidden},
		{"admin route as admin", RequireAdmin(), adminToken, http.StatusOK},
		{"store route as admin", RequireStore(), adminToken, http.StatusForbidden},
		{"store route as store", RequireStore(), storeToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlers := []gin.HandlerFunc{AuthMiddleware(jwtManager)}
			if tt.guard != nil {
				handlers = append(handlers, tt.guard)
			}
			if w := get(newRouter(handlers...), tt.token); w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestScopeFromWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if scope := ScopeFrom(c); scope.ActorID != uuid.Nil || scope.IsAdmin() || scope.IsStore() {
		t.Fatalf("scope = %+v", scope)
	}
}

func TestRateLimiterIsPerActor(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", "test", time.Hour)
	rl := NewActorRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()
	r := newRouter(AuthMiddleware(jwtManager), rl.Middleware())

	first, _ := jwtManager.GenerateAccessToken(uuid.New(), "store", "a@ajj.test")
	second, _ := jwtManager.GenerateAccessToken(uuid.New(), "store", "b@ajj.test")

	for i := 0; i < 2; i++ {
		if w := get(r, first); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}
	if w := get(r, first); w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status %d, want 429", w.Code)
	}
	if w := get(r, second); w.Code != http.StatusOK {
		t.Fatalf("other actor: status %d", w.Code)
	}
	if got := rl.Stats()["active_callers"]; got != 2 {
		t.Fatalf("active_callers = %v", got)
	}
}

func TestRateLimiterConfigFor(t *testing.T) {
	cfg := RateLimiterConfigFor(120, 60)
	if cfg.RequestsPerSecond != 2 || cfg.BurstSize != 120 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if def := RateLimiterConfigFor(0, 60); def.BurstSize != DefaultRateLimiterConfig().BurstSize {
		t.Fatalf("zero requests should keep defaults, got %+v", def)
	}
}

func TestCORSAllowsIdempotencyKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(&config.CORSConfig{
		AllowedOrigins: []string{"http://pos.ajj.test"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.POST("/bills", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/bills", nil)
	req.Header.Set("Origin", "http://pos.ajj.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://pos.ajj.test" {
		t.Fatalf("allow origin = %q", got)
	}
}
