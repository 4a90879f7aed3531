package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"updatesfeed/internal/config"
	"updatesfeed/internal/models"
	"updatesfeed/internal/session"
)

type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Owner), args.Error(1)
}

func (m *MockOwnerRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Owner, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Owner), args.Error(1)
}

func (m *MockOwnerRepository) EnsureOwner(ctx context.Context, email, password, displayName string) error {
	args := m.Called(ctx, email, password, displayName)
	return args.Error(0)
}

func authConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:    "test-secret",
		SessionDuration: time.Hour,
	}
}

func TestAuthService_SignInWithPassword(t *testing.T) {
	ctx := context.Background()
	owner := &models.Owner{OwnerID: "o1", Email: "owner@example.com", DisplayName: "Owner"}

	t.Run("successful sign-in emits a signed-in event", func(t *testing.T) {
		repo := new(MockOwnerRepository)
		repo.On("VerifyPassword", mock.Anything, "owner@example.com", "secret").Return(owner, nil)

		auth := NewAuthService(repo, authConfig())

		token, err := auth.SignInWithPassword(ctx, "owner@example.com", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		assert.NoError(t, auth.ValidateSession(token))

		select {
		case event := <-auth.Events():
			assert.Equal(t, session.EventSignedIn, event.Event)
			assert.Equal(t, token, event.Session)
		default:
			t.Fatal("expected a signed-in event")
		}

		repo.AssertExpectations(t)
	})

	t.Run("bad credentials surface the backend message", func(t *testing.T) {
		repo := new(MockOwnerRepository)
		repo.On("VerifyPassword", mock.Anything, "owner@example.com", "wrong").
			Return(nil, assert.AnError)

		auth := NewAuthService(repo, authConfig())

		token, err := auth.SignInWithPassword(ctx, "owner@example.com", "wrong")
		assert.Error(t, err)
		assert.Empty(t, token)
		assert.Contains(t, err.Error(), "authentication failed")

		select {
		case <-auth.Events():
			t.Fatal("no event expected on failed sign-in")
		default:
		}
	})
}

func TestAuthService_SignOut(t *testing.T) {
	ctx := context.Background()
	owner := &models.Owner{OwnerID: "o1", Email: "owner@example.com"}

	repo := new(MockOwnerRepository)
	repo.On("VerifyPassword", mock.Anything, "owner@example.com", "secret").Return(owner, nil)

	auth := NewAuthService(repo, authConfig())

	token, err := auth.SignInWithPassword(ctx, "owner@example.com", "secret")
	require.NoError(t, err)
	<-auth.Events() // drain the sign-in event

	t.Run("valid token signs out and emits the event", func(t *testing.T) {
		require.NoError(t, auth.SignOut(ctx, token))

		select {
		case event := <-auth.Events():
			assert.Equal(t, session.EventSignedOut, event.Event)
			assert.Empty(t, event.Session)
		default:
			t.Fatal("expected a signed-out event")
		}
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		err := auth.SignOut(ctx, "not-a-token")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "sign-out failed")
	})
}

func TestAuthService_ValidateSession(t *testing.T) {
	auth := NewAuthService(new(MockOwnerRepository), authConfig())

	t.Run("garbage token", func(t *testing.T) {
		assert.Error(t, auth.ValidateSession("garbage"))
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewAuthService(new(MockOwnerRepository), &config.Config{
			JWTSecretKey:    "different-secret",
			SessionDuration: time.Hour,
		})

		repo := new(MockOwnerRepository)
		repo.On("VerifyPassword", mock.Anything, mock.Anything, mock.Anything).
			Return(&models.Owner{Email: "owner@example.com"}, nil)
		foreign := NewAuthService(repo, authConfig())

		token, err := foreign.SignInWithPassword(context.Background(), "owner@example.com", "secret")
		require.NoError(t, err)

		assert.Error(t, other.ValidateSession(token))
	})
}
