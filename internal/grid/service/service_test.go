package service

import (
	"testing"
	"time"

	"github.com/maham-nadeemm/APDS/internal/config"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
	"github.com/maham-nadeemm/APDS/internal/shared/events"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	dispatcher := events.NewDispatcher(nil)
	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.AccessTokenExpire = 24 * time.Hour
	cfg.JWT.Issuer = "apds"
	return NewServices(repos, dispatcher, nil, cfg), db
}
