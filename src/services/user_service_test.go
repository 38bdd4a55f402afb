package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusmatch/Backend-Study-Match/src/lib"
	"github.com/campusmatch/Backend-Study-Match/src/models"
)

func newUserService(m *memStore) *UserService {
	return NewUserService(m, lib.NewPasswordHasher(bcrypt.MinCost), testLogger())
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Name:             "Alice",
		Email:            email,
		ProgramOfStudy:   "Computer Science",
		Interest:         "machine learning",
		Skills:           []string{"Python"},
		ProjectIdea:      "a student matching platform",
		AvailabilityDate: time.Now().Add(24 * time.Hour),
		Password:         "secret-password",
	}
}

func TestUserService_Register(t *testing.T) {
	m := newMemStore()
	s := newUserService(m)

	user, err := s.Register(context.Background(), registerInput("Alice@UNI.ch"))
	require.NoError(t, err)

	require.Equal(t, "alice@uni.ch", user.Email, "email is stored lowercased")
	require.Equal(t, models.RoleStudent, user.Role)
	require.True(t, user.IsActive)
	require.NotEqual(t, "secret-password", user.Password, "password must be hashed")
	require.Empty(t, user.Connections)
	require.Empty(t, user.PendingConnections)
}

func TestUserService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	m := newMemStore()
	s := newUserService(m)
	ctx := context.Background()

	_, err := s.Register(ctx, registerInput("Alice@uni.ch"))
	require.NoError(t, err)

	_, err = s.Register(ctx, registerInput("alice@UNI.CH"))
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestUserService_Authenticate(t *testing.T) {
	m := newMemStore()
	s := newUserService(m)
	ctx := context.Background()

	registered, err := s.Register(ctx, registerInput("alice@uni.ch"))
	require.NoError(t, err)
	require.Nil(t, registered.LastLogin)

	t.Run("ok", func(t *testing.T) {
		user, err := s.Authenticate(ctx, "ALICE@uni.ch", "secret-password")
		require.NoError(t, err)
		require.Equal(t, registered.Id, user.Id)
		require.NotNil(t, user.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := s.Authenticate(ctx, "alice@uni.ch", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Authenticate(ctx, "nobody@uni.ch", "secret-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		require.NoError(t, s.Deactivate(ctx, registered.Id))
		_, err := s.Authenticate(ctx, "alice@uni.ch", "secret-password")
		require.ErrorIs(t, err, ErrInactiveAccount)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	m := newMemStore()
	s := newUserService(m)
	ctx := context.Background()

	alice, err := s.Register(ctx, registerInput("alice@uni.ch"))
	require.NoError(t, err)
	_, err = s.Register(ctx, registerInput("bob@uni.ch"))
	require.NoError(t, err)

	t.Run("partial update", func(t *testing.T) {
		interest := "distributed systems"
		updated, err := s.UpdateProfile(ctx, alice.Id, UpdateProfileInput{Interest: &interest})
		require.NoError(t, err)
		require.Equal(t, "distributed systems", updated.Interest)
		require.Equal(t, alice.Name, updated.Name, "untouched fields survive")
	})

	t.Run("email conflict", func(t *testing.T) {
		email := "BOB@uni.ch"
		_, err := s.UpdateProfile(ctx, alice.Id, UpdateProfileInput{Email: &email})
		require.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("same email is not a conflict", func(t *testing.T) {
		email := "ALICE@uni.ch"
		updated, err := s.UpdateProfile(ctx, alice.Id, UpdateProfileInput{Email: &email})
		require.NoError(t, err)
		require.Equal(t, "alice@uni.ch", updated.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		name := "Nobody"
		_, err := s.UpdateProfile(ctx, primitive.NewObjectID(), UpdateProfileInput{Name: &name})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	m := newMemStore()
	s := newUserService(m)
	ctx := context.Background()

	alice, err := s.Register(ctx, registerInput("alice@uni.ch"))
	require.NoError(t, err)

	require.NoError(t, s.Deactivate(ctx, alice.Id))

	stored, err := m.ByID(ctx, alice.Id)
	require.NoError(t, err)
	require.False(t, stored.IsActive, "soft delete keeps the record")

	require.ErrorIs(t, s.Deactivate(ctx, alice.Id), ErrAlreadyInactive)
	require.ErrorIs(t, s.Deactivate(ctx, primitive.NewObjectID()), ErrNotFound)
}

func TestUserService_ListActive(t *testing.T) {
	m := newMemStore()
	s := newUserService(m)
	ctx := context.Background()

	alice, err := s.Register(ctx, registerInput("alice@uni.ch"))
	require.NoError(t, err)
	_, err = s.Register(ctx, registerInput("bob@uni.ch"))
	require.NoError(t, err)

	require.NoError(t, s.Deactivate(ctx, alice.Id))

	users, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "bob@uni.ch", users[0].Email)
}