package middleware

import (
	"strings"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/response"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by AuthMiddleware
const (
	ContextActorID   = "actor_id"
	ContextActorType = "actor_type"
	ContextEmail     = "actor_email"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}
		actorType := enum.ActorType(claims.ActorType)
		if !actorType.Valid() || claims.ActorID == uuid.Nil {
			response.Unauthorized(c, "Invalid token subject")
			c.Abort()
			return
		}

		c.Set(ContextActorID, claims.ActorID)
		c.Set(ContextActorType, actorType.String())
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// RequireAdmin rejects callers that are not admins
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ScopeFrom(c).IsAdmin() {
			response.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStore rejects callers that are not stores
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ScopeFrom(c).IsStore() {
			response.Forbidden(c, "Store access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ScopeFrom builds the caller scope set by AuthMiddleware. An
// unauthenticated request yields an empty scope.
func ScopeFrom(c *gin.Context) service.Scope {
	idVal, ok := c.Get(ContextActorID)
	if !ok {
		return service.Scope{}
	}
	id, ok := idVal.(uuid.UUID)
	if !ok {
		return service.Scope{}
	}
	return service.Scope{ActorID: id, ActorType: enum.ActorType(c.GetString(ContextActorType))}
}
