package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	"github.com/ajjstores/retail-ledger-api/internal/domain/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
	"github.com/google/uuid"
)

// AuthService issues access tokens to admins and stores
type AuthService struct {
	adminRepo  repository.AdminRepository
	storeRepo  repository.StoreRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(adminRepo repository.AdminRepository, storeRepo repository.StoreRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		storeRepo:  storeRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Token     string         `json:"token"`
	ActorID   uuid.UUID      `json:"actor_id"`
	ActorType enum.ActorType `json:"actor_type"`
	Name      string         `json:"name"`
}

// LoginAdmin authenticates an admin account
func (s *AuthService) LoginAdmin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil || !utils.CheckPasswordHash(input.Password, admin.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, apperror.NewAppError(http.StatusForbidden, apperror.KindForbidden, "Account is disabled")
	}
	return s.issue(admin.ID, enum.ActorTypeAdmin, admin.Email, admin.Name)
}

// LoginStore authenticates a store account
func (s *AuthService) LoginStore(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	store, err := s.storeRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if store == nil || !utils.CheckPasswordHash(input.Password, store.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !store.IsActive {
		return nil, apperror.NewAppError(http.StatusForbidden, apperror.KindForbidden, "Store is disabled")
	}
	return s.issue(store.ID, enum.ActorTypeStore, store.Email, store.Name)
}

func (s *AuthService) issue(id uuid.UUID, actorType enum.ActorType, email, name string) (*LoginOutput, error) {
	token, err := s.jwtManager.GenerateAccessToken(id, actorType.String(), email)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{
		Token:     token,
		ActorID:   id,
		ActorType: actorType,
		Name:      name,
	}, nil
}
