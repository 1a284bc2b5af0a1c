package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webshop/backend/internal/domain/identity"
	"github.com/webshop/backend/internal/domain/shared"
	"github.com/webshop/backend/internal/infrastructure/auth"
	"github.com/webshop/backend/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByCode(ctx context.Context, code string) (*identity.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role identity.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) GenerateCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func newAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret",
		TokenExpiration: time.Hour,
		Issuer:          "webshop-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func TestAuthService_Register(t *testing.T) {
	t.Run("registers a new user and issues a token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		repo.On("GenerateCode", mock.Anything).Return("USR1001", nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, "USR1001", resp.User.Code)
		assert.Equal(t, "user", resp.User.Role)
		assert.NotEmpty(t, resp.Token)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestAuthService_Login(t *testing.T) {
	registered := func(t *testing.T) *identity.User {
		user, err := identity.NewUser("USR1001", "Alice", "alice@example.com", "password123", "", "")
		require.NoError(t, err)
		return user
	}

	t.Run("logs in with valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(registered(t), nil)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, "USR1001", resp.User.Code)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password yields invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(registered(t), nil)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email yields the same error as a wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Run("changes the password when the current one matches", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		user, err := identity.NewUser("USR1001", "Alice", "alice@example.com", "password123", "", "")
		require.NoError(t, err)
		repo.On("FindByCode", mock.Anything, "USR1001").Return(user, nil)
		repo.On("Save", mock.Anything, user).Return(nil)

		err = svc.ChangePassword(context.Background(), "USR1001", ChangePasswordRequest{
			CurrentPassword: "password123",
			NewPassword:     "new-password",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("new-password"))
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		user, err := identity.NewUser("USR1001", "Alice", "alice@example.com", "password123", "", "")
		require.NoError(t, err)
		repo.On("FindByCode", mock.Anything, "USR1001").Return(user, nil)

		err = svc.ChangePassword(context.Background(), "USR1001", ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "new-password",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}
