package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/stubuddies/backend/internal/config"
	"github.com/stubuddies/backend/internal/dto"
	"github.com/stubuddies/backend/internal/models"
	"github.com/stubuddies/backend/internal/repository"
	"github.com/stubuddies/backend/internal/services"
	"github.com/stubuddies/backend/internal/validation"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
}

func validSignup() *dto.SignupRequest {
	return &dto.SignupRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Age:             30,
		Gender:          "Female",
		Username:        "ada123",
		Email:           "ada@example.com",
		PhoneNumber:     "+1234567890",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		TermsAccepted:   true,
	}
}

func TestRegister(t *testing.T) {
	t.Run("success stores a bcrypt hash, never the plaintext", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, testConfig())

		repo.On("Insert", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			if u.PasswordHash == "" || u.PasswordHash == "secret1" {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
		})).Return(&models.User{ID: primitive.NewObjectID()}, nil).Once()

		err := svc.Register(context.Background(), validSignup())
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("validation failure performs no hashing and no writes", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, testConfig())

		req := validSignup()
		req.Age = 13

		err := svc.Register(context.Background(), req)
		require.Error(t, err)

		var fieldErrs validation.Errors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "age")
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("missing required field rejected before any write", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, testConfig())

		req := validSignup()
		req.Email = ""

		err := svc.Register(context.Background(), req)
		var fieldErrs validation.Errors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "email")
		repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("duplicate field passes through from the store", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, testConfig())

		repo.On("Insert", mock.Anything, mock.Anything).
			Return(nil, &repository.ConflictError{Field: "username"}).Once()

		err := svc.Register(context.Background(), validSignup())
		var conflict *repository.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "username", conflict.Field)
	})

	t.Run("username is trimmed before persisting", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, testConfig())

		repo.On("Insert", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "ada123"
		})).Return(&models.User{}, nil).Once()

		req := validSignup()
		req.Username = "  ada123  "
		require.NoError(t, svc.Register(context.Background(), req))
		repo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	cfg := testConfig()
	userID := primitive.NewObjectID()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &models.User{
		ID:           userID,
		Username:     "ada123",
		Email:        "ada@example.com",
		PasswordHash: string(hash),
	}

	t.Run("correct password returns a token bound to the user", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, cfg)
		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(storedUser, nil).Once()

		before := time.Now()
		tokenStr, err := svc.Login(context.Background(), &dto.SigninRequest{
			Email: "ada@example.com", Password: "secret1",
		})
		require.NoError(t, err)
		require.NotEmpty(t, tokenStr)

		parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, userID.Hex(), claims["sub"])
		assert.Equal(t, "ada@example.com", claims["email"])
		assert.NotEmpty(t, claims["jti"])

		exp, err := claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, before.Add(time.Hour), exp.Time, 5*time.Second)
	})

	t.Run("wrong password returns invalid credentials", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, cfg)
		repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(storedUser, nil).Once()

		_, err := svc.Login(context.Background(), &dto.SigninRequest{
			Email: "ada@example.com", Password: "wrong",
		})
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email returns user not found", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, cfg)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repository.ErrUserNotFound).Once()

		_, err := svc.Login(context.Background(), &dto.SigninRequest{
			Email: "ghost@example.com", Password: "whatever",
		})
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})

	t.Run("store failure surfaces as-is", func(t *testing.T) {
		repo := new(mockUserRepository)
		svc := services.NewAuthService(repo, cfg)
		repo.On("FindByEmail", mock.Anything, "ada@example.com").
			Return(nil, errors.New("connection reset")).Once()

		_, err := svc.Login(context.Background(), &dto.SigninRequest{
			Email: "ada@example.com", Password: "secret1",
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrUserNotFound)
		assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

func TestExpiredTokenIsRejected(t *testing.T) {
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", PasswordHash: string(hash)}

	repo := new(mockUserRepository)
	svc := services.NewAuthService(repo, cfg)
	repo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil).Once()

	tokenStr, err := svc.Login(context.Background(), &dto.SigninRequest{
		Email: "ada@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGetUser(t *testing.T) {
	repo := new(mockUserRepository)
	svc := services.NewAuthService(repo, testConfig())

	repo.On("FindByID", mock.Anything, "missing").
		Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
