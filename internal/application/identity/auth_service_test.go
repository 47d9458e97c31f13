package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/identity"
	"github.com/jaysam/backend/internal/domain/shared"
	"github.com/jaysam/backend/internal/infrastructure/auth"
	"github.com/jaysam/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
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

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-that-is-long-enough",
		RefreshSecret:          "test-refresh-secret-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "jaysam-test",
		MaxRefreshCount:        3,
	})
}

func newAuthFixture() (*AuthService, *MockUserRepository, auth.TokenBlacklist) {
	userRepo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(userRepo, testJWTService(), blacklist, zap.NewNop())
	return svc, userRepo, blacklist
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Sam", "Jay", "sam@example.com", "correct-horse")
	require.NoError(t, err)
	return user
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and issues tokens", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()

		userRepo.On("FindByEmail", ctx, "sam@example.com").Return(nil, shared.ErrNotFound)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			FirstName: "Sam",
			LastName:  "Jay",
			Email:     "sam@example.com",
			Password:  "correct-horse",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "Client", result.User.Role)
		assert.Equal(t, "Sam Jay", result.User.FullName)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		existing := newTestUser(t)

		userRepo.On("FindByEmail", ctx, "sam@example.com").Return(existing, nil)

		_, err := svc.Register(ctx, RegisterInput{
			FirstName: "Sam",
			LastName:  "Jay",
			Email:     "sam@example.com",
			Password:  "correct-horse",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("logs in with valid credentials", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		user := newTestUser(t)

		userRepo.On("FindByEmail", ctx, "sam@example.com").Return(user, nil)

		result, err := svc.Login(ctx, LoginInput{Email: "sam@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("wrong password and unknown email report the same error", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		user := newTestUser(t)

		userRepo.On("FindByEmail", ctx, "sam@example.com").Return(user, nil)
		userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

		_, badPassword := svc.Login(ctx, LoginInput{Email: "sam@example.com", Password: "wrong-horse"})
		_, badEmail := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "correct-horse"})

		require.Error(t, badPassword)
		require.Error(t, badEmail)
		assert.Equal(t, "INVALID_CREDENTIALS", shared.ErrorCode(badPassword))
		assert.Equal(t, "INVALID_CREDENTIALS", shared.ErrorCode(badEmail))
	})
}

func TestAuthServiceRefreshToken(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, svc *AuthService, userRepo *MockUserRepository, user *identity.User) *LoginResult {
		t.Helper()
		userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
		result, err := svc.Login(ctx, LoginInput{Email: user.Email, Password: "correct-horse"})
		require.NoError(t, err)
		return result
	}

	t.Run("issues a new pair and picks up role changes", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		user := newTestUser(t)
		result := login(t, svc, userRepo, user)

		// Role change after login takes effect at refresh
		require.NoError(t, user.AssignRole(identity.RoleManager))
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		claims, err := testJWTService().ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "Manager", claims.Role)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		svc, _, _ := newAuthFixture()

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: "not-a-token"})
		require.Error(t, err)
		assert.Equal(t, "TOKEN_INVALID", shared.ErrorCode(err))
	})

	t.Run("rejects an access token used as refresh token", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		user := newTestUser(t)
		result := login(t, svc, userRepo, user)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.AccessToken})
		require.Error(t, err)
	})

	t.Run("rejects tokens issued before a forced invalidation", func(t *testing.T) {
		svc, userRepo, blacklist := newAuthFixture()
		user := newTestUser(t)
		result := login(t, svc, userRepo, user)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		// Invalidate everything issued up to now
		require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), 7*24*time.Hour))

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
		require.Error(t, err)
		assert.Equal(t, "TOKEN_REVOKED", shared.ErrorCode(err))
	})

	t.Run("rejects refresh for a deleted account", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		user := newTestUser(t)
		result := login(t, svc, userRepo, user)

		userRepo.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
		require.Error(t, err)
		assert.Equal(t, "USER_NOT_FOUND", shared.ErrorCode(err))
	})
}

func TestAuthServiceLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, blacklist := newAuthFixture()
	userID := uuid.New()

	err := svc.Logout(ctx, LogoutInput{
		UserID:   userID,
		TokenJTI: "jti-123",
		TokenTTL: time.Hour,
	})
	require.NoError(t, err)

	blacklisted, err := blacklist.IsBlacklisted(ctx, "jti-123")
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

func TestAuthServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password after verifying the old one", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		user := newTestUser(t)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "correct-horse",
			NewPassword: "battery-staple",
		})
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("battery-staple"))
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		svc, userRepo, _ := newAuthFixture()
		user := newTestUser(t)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := svc.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong-horse",
			NewPassword: "battery-staple",
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", shared.ErrorCode(err))
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
