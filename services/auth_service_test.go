package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chathuri2/CrickInfo/models"
)

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil)

	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := svc.Register(ctx, "kusal", "kusal@example.com", "correct horse battery")
		require.NoError(t, err)

		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "correct horse battery", user.PasswordHash)
		assert.NotZero(t, user.ID)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := svc.Register(ctx, "short", "short@example.com", "seven77")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := svc.Register(ctx, "bademail", "not-an-email", "long enough password")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, "other", "kusal@example.com", "long enough password")
		assert.ErrorIs(t, err, ErrUserEmailConflict)
	})

	t.Run("normalizes email case", func(t *testing.T) {
		_, err := svc.Register(ctx, "another", "KUSAL@example.com", "long enough password")
		assert.ErrorIs(t, err, ErrUserEmailConflict)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil)

	registered, err := svc.Register(ctx, "dinesh", "dinesh@example.com", "a valid password")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(ctx, "dinesh@example.com", "a valid password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "dinesh@example.com", "wrong password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "a valid password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthServicePasswordReset(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil)

	user, err := svc.Register(ctx, "pathum", "pathum@example.com", "original password")
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		_, token, err := svc.GeneratePasswordResetToken(ctx, "pathum@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		updated, err := svc.ResetPasswordByToken(ctx, token, "brand new password")
		require.NoError(t, err)
		assert.Equal(t, user.ID, updated.ID)
		assert.Nil(t, updated.PasswordResetToken)

		_, err = svc.Login(ctx, "pathum@example.com", "brand new password")
		assert.NoError(t, err)

		_, err = svc.Login(ctx, "pathum@example.com", "original password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := svc.ResetPasswordByToken(ctx, "bogus", "brand new password")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("expired token", func(t *testing.T) {
		_, token, err := svc.GeneratePasswordResetToken(ctx, "pathum@example.com")
		require.NoError(t, err)

		stored, err := repo.GetByEmail(ctx, "pathum@example.com")
		require.NoError(t, err)
		expired := time.Now().Add(-time.Minute)
		stored.PasswordResetExpiresAt = &expired
		require.NoError(t, repo.Update(ctx, stored))

		_, err = svc.ResetPasswordByToken(ctx, token, "brand new password")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.GeneratePasswordResetToken(ctx, "missing@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
