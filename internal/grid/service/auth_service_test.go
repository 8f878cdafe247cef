package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/testutil"
)

func TestLoginAndCreateUser(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	dgm := testutil.SeedUser(t, db, "boss", entity.RoleDGM)

	created, err := svc.Auth.CreateUser(ctx, dgm.ID, &CreateUserRequest{
		Username: "tech9",
		Password: "correct-horse",
		FullName: "Shift Technician",
		Role:     entity.RoleTechnician,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Password == "correct-horse" {
		t.Fatal("Password must be stored hashed")
	}

	result, err := svc.Auth.Login(ctx, &LoginRequest{Username: "tech9", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("Expected an access token")
	}
	if result.User.ID != created.ID {
		t.Errorf("Expected user %s, got %s", created.ID, result.User.ID)
	}

	// the token carries id and role, signed with the configured secret
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testutil.JWTSecret), nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims: %v", err)
	}
	if claims["uid"] != created.ID {
		t.Errorf("Expected uid claim %s, got %v", created.ID, claims["uid"])
	}
	if claims["role"] != entity.RoleTechnician {
		t.Errorf("Expected role claim technician, got %v", claims["role"])
	}
}

func TestLoginFailures(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	dgm := testutil.SeedUser(t, db, "boss", entity.RoleDGM)
	user, err := svc.Auth.CreateUser(ctx, dgm.ID, &CreateUserRequest{
		Username: "eng9",
		Password: "s3cret-pass",
		Role:     entity.RoleEngineer,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := svc.Auth.Login(ctx, &LoginRequest{Username: "nobody", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Auth.Login(ctx, &LoginRequest{Username: "eng9", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	db.Model(&entity.User{}).Where("id = ?", user.ID).Update("is_active", false)
	if _, err := svc.Auth.Login(ctx, &LoginRequest{Username: "eng9", Password: "s3cret-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestCreateUserPermissions(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	dm := testutil.SeedUser(t, db, "dm1", entity.RoleDM)
	dgm := testutil.SeedUser(t, db, "boss", entity.RoleDGM)

	if _, err := svc.Auth.CreateUser(ctx, dm.ID, &CreateUserRequest{
		Username: "x", Password: "password1", Role: entity.RoleTechnician,
	}); !errors.Is(err, ErrPermission) {
		t.Fatalf("Expected ErrPermission for dm creator, got %v", err)
	}

	if _, err := svc.Auth.CreateUser(ctx, dgm.ID, &CreateUserRequest{
		Username: "x", Password: "password1", Role: "sorcerer",
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation for unknown role, got %v", err)
	}
}
