package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service/auth"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users     map[uuid.UUID]domain.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]domain.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) WithTx(_ *sql.Tx) store.UserStore { return f }

func newTestUserService(t *testing.T) (UserService, *fakeUserStore) {
	t.Helper()
	users := newFakeUserStore()
	bcryptVerifier := auth.NewBcryptVerifier(bcrypt.MinCost)
	svc, err := NewUserService(users, bcryptVerifier, bcryptVerifier, nil)
	require.NoError(t, err)
	return svc, users
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores hashed password", func(t *testing.T) {
		svc, users := newTestUserService(t)

		user, err := svc.Register(ctx, "  Alice@Example.COM ", "Alice", "password123")
		require.NoError(t, err)

		assert.Equal(t, "Alice@example.com", user.Email)
		assert.Empty(t, user.Password)
		stored := users.users[user.ID]
		assert.NotEqual(t, "password123", stored.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("password123")))
		assert.True(t, stored.IsActive)
		assert.False(t, stored.IsStaff)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		_, err := svc.Register(ctx, "alice@example.com", "", "password123")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "alice@EXAMPLE.com", "", "password123")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc, _ := newTestUserService(t)

		_, err := svc.Register(ctx, "not-an-email", "", "pw")
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "email")
		assert.Contains(t, validationErr.Fields, "password")
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		svc, users := newTestUserService(t)
		users.createErr = errors.New("connection reset")

		_, err := svc.Register(ctx, "alice@example.com", "", "password123")
		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "register", serviceErr.Op)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestUserService(t)

	user, err := svc.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "alice@EXAMPLE.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice@example.com", "nope-nope")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "bob@example.com", "password123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		stored := users.users[user.ID]
		stored.IsActive = false
		users.users[user.ID] = stored

		_, err := svc.Authenticate(ctx, "alice@example.com", "password123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)

	user, err := svc.Register(ctx, "alice@example.com", "", "password123")
	require.NoError(t, err)

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = svc.Get(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrMissingOwner)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func TestUserService_Register_HashFailure(t *testing.T) {
	users := newFakeUserStore()
	hasher := new(mockHasher)
	hasher.On("Hash", "password123").Return("", errors.New("entropy exhausted")).Once()

	svc, err := NewUserService(users, hasher, auth.NewBcryptVerifier(bcrypt.MinCost), nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "", "password123")
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Empty(t, users.users)
	hasher.AssertExpectations(t)
}

func TestNewUserService_NilDependencies(t *testing.T) {
	v := auth.NewBcryptVerifier(bcrypt.MinCost)

	_, err := NewUserService(nil, v, v, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = NewUserService(newFakeUserStore(), nil, v, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = NewUserService(newFakeUserStore(), v, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
