package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsage/internal/config"
	"github.com/jonathan/skillsage/internal/db"
	"github.com/jonathan/skillsage/internal/types"
)

func newTestUserService(t *testing.T) (*UserService, *fakeDB) {
	t.Helper()
	passwords, err := config.NewPasswordConfig(10, "pepper")
	require.NoError(t, err)
	fdb := newFakeDB()
	return NewUserService(fdb, passwords), fdb
}

func TestConvertDBUserToTypesUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		now := time.Now()
		dbUser := &db.User{
			ID:           uuid.New(),
			Name:         "John Doe",
			Email:        "john@example.com",
			PasswordHash: "hashed-password",
			PasswordSet:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		typesUser := convertDBUserToTypesUser(dbUser)
		require.NotNil(t, typesUser)
		assert.Equal(t, dbUser.ID, typesUser.ID)
		assert.Equal(t, dbUser.Name, typesUser.Name)
		assert.Equal(t, dbUser.Email, typesUser.Email)
		assert.Equal(t, dbUser.PasswordSet, typesUser.PasswordSet)
		assert.Equal(t, dbUser.CreatedAt, typesUser.CreatedAt)
		assert.Equal(t, dbUser.UpdatedAt, typesUser.UpdatedAt)
	})

	t.Run("nil user", func(t *testing.T) {
		assert.Nil(t, convertDBUserToTypesUser(nil))
	})
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a peppered hash", func(t *testing.T) {
		svc, fdb := newTestUserService(t)
		user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.True(t, user.PasswordSet)

		stored := fdb.users[user.ID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.True(t, svc.passwordConfig.VerifyPassword("password123", stored.PasswordHash))
	})

	t.Run("existing email", func(t *testing.T) {
		svc, _ := newTestUserService(t)
		req := &types.CreateUserRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		var exists *ErrEmailAlreadyExists
		assert.ErrorAs(t, err, &exists)
	})

	t.Run("duplicate detected on insert", func(t *testing.T) {
		svc, fdb := newTestUserService(t)
		fdb.createErr = db.ErrDuplicateEmail
		_, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"})
		var exists *ErrEmailAlreadyExists
		assert.ErrorAs(t, err, &exists)
	})

	t.Run("password failure removes the account", func(t *testing.T) {
		svc, fdb := newTestUserService(t)
		fdb.passwordErr = errors.New("connection reset")
		_, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"})
		require.Error(t, err)
		assert.Empty(t, fdb.users)
		assert.Len(t, fdb.deleted, 1)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	svc, fdb := newTestUserService(t)
	registered, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.Login(ctx, &types.LoginRequest{Email: "meera@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	var invalid *ErrInvalidCredentials
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "meera@example.com", Password: "wrong-password"})
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.Login(ctx, &types.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	assert.ErrorAs(t, err, &invalid)

	// account without a password
	id, err := fdb.CreateUser(ctx, "No Password", "nopass@example.com")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "nopass@example.com", Password: ""})
	assert.ErrorAs(t, err, &invalid)
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)
	registered, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meera", user.Name)

	_, err = svc.GetUser(ctx, uuid.New())
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService(t)
	user, err := svc.Register(ctx, &types.CreateUserRequest{Name: "Meera", Email: "meera@example.com", Password: "password123"})
	require.NoError(t, err)

	var mismatch *ErrPasswordMismatch
	err = svc.UpdatePassword(ctx, user.ID, "not-it", "newpassword456")
	assert.ErrorAs(t, err, &mismatch)

	var notFound *ErrUserNotFound
	err = svc.UpdatePassword(ctx, uuid.New(), "password123", "newpassword456")
	assert.ErrorAs(t, err, &notFound)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "password123", "newpassword456"))
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "meera@example.com", Password: "newpassword456"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, &types.LoginRequest{Email: "meera@example.com", Password: "password123"})
	assert.Error(t, err)
}
