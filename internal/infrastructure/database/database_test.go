package database

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ajjstores/retail-ledger-api/internal/config"
	"github.com/ajjstores/retail-ledger-api/internal/domain/entity"
	applog "github.com/ajjstores/retail-ledger-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestSeedDefaultDataCreatesAdminOnce(t *testing.T) {
	db, err := NewSQLiteDB("file:seed_admin?mode=memory&cache=shared", false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.AdminConfig{Email: "owner@ajj.test", Password: "s3cret", Name: "Owner"}
	for i := 0; i < 2; i++ {
		if err := SeedDefaultData(db, cfg); err != nil {
			t.Fatalf("seed #%d: %v", i, err)
		}
	}

	var admins []entity.Admin
	if err := db.Find(&admins).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("admins = %d, want 1", len(admins))
	}
	if !admins[0].IsActive {
		t.Error("seeded admin should be active")
	}
	if bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("s3cret")) != nil {
		t.Error("seeded password is not a bcrypt hash of the configured one")
	}
}

func TestSeedDefaultDataSkipsWithoutCredentials(t *testing.T) {
	db, err := NewSQLiteDB("file:seed_skip?mode=memory&cache=shared", false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := SeedDefaultData(db, config.AdminConfig{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var count int64
	db.Model(&entity.Admin{}).Count(&count)
	if count != 0 {
		t.Errorf("admins = %d, want 0", count)
	}
}

func TestExpectedMissIsNotLogged(t *testing.T) {
	db, err := NewSQLiteDB("file:quiet_miss?mode=memory&cache=shared", false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var buf bytes.Buffer
	applog.L().SetOutput(&buf)
	t.Cleanup(func() { applog.L().SetOutput(os.Stderr) })

	err = db.First(&entity.Admin{}, "email = ?", "nobody@ajj.test").Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want record not found", err)
	}
	if strings.Contains(buf.String(), "record not found") {
		t.Errorf("miss was logged: %s", buf.String())
	}

	db.Exec("SELECT * FROM missing_table")
	if buf.Len() == 0 {
		t.Error("real query errors should still be logged")
	}
}
