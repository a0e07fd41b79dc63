package handler

import (
	"context"

	"github.com/ajjstores/retail-ledger-api/internal/application/service"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/request"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/dto/response"
	"github.com/ajjstores/retail-ledger-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminLogin handles admin login
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, h.authService.LoginAdmin)
}

// StoreLogin handles store login
// @Summary Store login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/store/login [post]
func (h *AuthHandler) StoreLogin(c *gin.Context) {
	h.login(c, h.authService.LoginStore)
}

type loginFunc func(ctx context.Context, input *service.LoginInput) (*service.LoginOutput, error)

func (h *AuthHandler) login(c *gin.Context, fn loginFunc) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := fn(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"access_token": output.Token,
		"token_type":   "Bearer",
		"actor_id":     output.ActorID,
		"actor_type":   output.ActorType,
		"name":         output.Name,
	})
}

// Me returns the authenticated caller
func (h *AuthHandler) Me(c *gin.Context) {
	scope := middleware.ScopeFrom(c)
	response.OK(c, "Authenticated", gin.H{
		"actor_id":   scope.ActorID,
		"actor_type": scope.ActorType,
		"email":      c.GetString(middleware.ContextEmail),
	})
}
