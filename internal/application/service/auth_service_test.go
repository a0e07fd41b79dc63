package service

import (
	"testing"
	"time"

	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	"github.com/ajjstores/retail-ledger-api/internal/domain/enum"
	infraRepo "github.com/ajjstores/retail-ledger-api/internal/infrastructure/repository"
	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/utils"
)

func TestLoginIssuesActorToken(t *testing.T) {
	env := newTestEnv(t)
	jwtManager := utils.NewJWTManager("test-secret", "retail-ledger", time.Hour)
	auth := NewAuthService(infraRepo.NewAdminRepository(env.db), infraRepo.NewStoreRepository(env.db), jwtManager)

	hashed, err := utils.HashPassword("admin-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := entity.Admin{Name: "Owner", Email: "owner@ajj.test", Password: hashed, IsActive: true}
	if err := env.db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	out, err := auth.LoginAdmin(env.ctx, &LoginInput{Email: " Owner@AJJ.test ", Password: "admin-pass"})
	if err != nil {
		t.Fatalf("login admin: %v", err)
	}
	claims, err := jwtManager.ValidateAccessToken(out.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.ActorID != admin.ID || claims.ActorType != string(enum.ActorTypeAdmin) {
		t.Errorf("claims = %s/%s", claims.ActorID, claims.ActorType)
	}

	_, err = auth.LoginAdmin(env.ctx, &LoginInput{Email: "owner@ajj.test", Password: "wrong"})
	wantKind(t, err, apperror.KindUnauthorized)

	_, err = auth.LoginStore(env.ctx, &LoginInput{Email: "owner@ajj.test", Password: "admin-pass"})
	wantKind(t, err, apperror.KindUnauthorized)
}

func TestLoginRejectsDisabledStore(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(infraRepo.NewAdminRepository(env.db), infraRepo.NewStoreRepository(env.db),
		utils.NewJWTManager("test-secret", "retail-ledger", time.Hour))

	store, err := env.catalog.CreateStore(env.ctx, env.admin, &CreateStoreInput{Name: "Quay", Email: "quay@ajj.test", Password: "store-pass"})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	out, err := auth.LoginStore(env.ctx, &LoginInput{Email: "quay@ajj.test", Password: "store-pass"})
	if err != nil {
		t.Fatalf("login store: %v", err)
	}
	if out.ActorType != enum.ActorTypeStore || out.ActorID != store.ID {
		t.Errorf("login output = %+v", out)
	}

	if _, err := env.catalog.SetStoreActive(env.ctx, env.admin, store.ID, false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	_, err = auth.LoginStore(env.ctx, &LoginInput{Email: "quay@ajj.test", Password: "store-pass"})
	wantKind(t, err, apperror.KindForbidden)
}
