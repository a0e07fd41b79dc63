package middleware

import (
	"slices"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	devOrigins     = []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", "X-Request-ID"}

	// headers the POS clients read back
	exposedHeaders = []string{
		"Content-Length", "X-Request-ID", "X-Idempotency-Replayed",
		"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After",
	}
)

// CORSMiddleware builds the CORS policy. Empty settings fall back to the
// development defaults; Idempotency-Key is always allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = devOrigins
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultMethods
	}
	headers := slices.Clone(cfg.AllowedHeaders)
	if len(headers) == 0 {
		headers = slices.Clone(defaultHeaders)
	}
	if !slices.Contains(headers, IdempotencyKeyHeader) {
		headers = append(headers, IdempotencyKeyHeader)
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
