package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventboard/events-api/pkg/events"
	memoryrepo "github.com/eventboard/events-api/pkg/events/repo/memory"
)

func newTestAuth() (*Service, *jwtauth.JWTAuth) {
	tokens := jwtauth.New("HS256", []byte("test-secret"), nil)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, memoryrepo.New(), tokens, time.Hour), tokens
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, events.RoleUser, user.Role)

	// The stored hash verifies against the original password and nothing else.
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("s3cret-pass")))
	assert.Error(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("wrong")))

	_, err = svc.Register(ctx, "alice@example.com", "another-pass")
	assert.ErrorIs(t, err, events.ErrUserExists)
}

func TestLogin(t *testing.T) {
	svc, tokens := newTestAuth()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		decoded, err := tokens.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "1", decoded.Subject())

		role, ok := decoded.Get("role")
		require.True(t, ok)
		assert.Equal(t, events.RoleUser, role)
		assert.True(t, decoded.Expiration().After(time.Now()))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, events.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, events.ErrInvalidCredentials,
			"an unknown account must be indistinguishable from a bad password")
	})
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	t.Run("change email only", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, user.ID, "alice2@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, "alice2@example.com", updated.Email)

		// Old password still works.
		_, err = svc.Login(ctx, "alice2@example.com", "s3cret-pass")
		assert.NoError(t, err)
	})

	t.Run("change password only", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, user.ID, "", "new-pass")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice2@example.com", "new-pass")
		assert.NoError(t, err)

		_, err = svc.Login(ctx, "alice2@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, events.ErrInvalidCredentials)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, 99, "x@example.com", "")
		assert.ErrorIs(t, err, events.ErrUserNotFound)
	})
}
