package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stubuddies/backend/internal/config"
	"github.com/stubuddies/backend/internal/dto"
	"github.com/stubuddies/backend/internal/models"
	"github.com/stubuddies/backend/internal/repository"
	"github.com/stubuddies/backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register validates the signup payload, hashes the password and inserts the
// user. Validation runs in full before any hashing or I/O; uniqueness is left
// to the store's indexes, so a duplicate surfaces as *repository.ConflictError.
func (s *AuthService) Register(ctx context.Context, req *dto.SignupRequest) error {
	if errs := validation.Signup(req); errs != nil {
		return errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		Gender:       req.Gender,
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Insert(ctx, user); err != nil {
		return err
	}
	return nil
}

// Login looks up the user by email, compares the password against the stored
// bcrypt hash and mints a signed access token. Read-only against the store.
func (s *AuthService) Login(ctx context.Context, req *dto.SigninRequest) (string, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateAccessToken(user)
}

// GetUser returns the user behind a token subject for the profile route.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"jti":   uuid.New().String(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
