package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/config"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords,
// so a caller cannot probe which one it was.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService authenticates users and issues access tokens.
type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

// LoginRequest carries the credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResult is the issued access token.
type TokenResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *entity.User `json:"user"`
}

// CreateUserRequest provisions a user. Only the DGM may call it.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
}

// Login verifies the credentials and issues a signed token carrying the
// user's id, name and role.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenResult{
		AccessToken: token,
		ExpiresIn:   int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
		User:        user,
	}, nil
}

// CreateUser provisions an account with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, creatorID string, req *CreateUserRequest) (*entity.User, error) {
	creator, err := s.userRepo.FindByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("find creator: %w", err)
	}
	if !creator.HasPermission(entity.RoleDGM) {
		return nil, fmt.Errorf("%w: creating users requires %s", ErrPermission, entity.RoleDGM)
	}
	if entity.RoleRank[req.Role] == 0 {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		ID:       uuid.New().String()[:32],
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) generateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"uid":  user.ID,
		"name": user.FullName,
		"role": user.Role,
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":  uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
