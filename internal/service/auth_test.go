package service_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/validation"
)

func TestRegisterCreatesUserAndWelcomeNotification(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	user, err := e.auth.Register(ctx, service.RegisterInput{
		Name:     " Ada ",
		Email:    "  Ada@Example.com",
		Password: "correct-horse-battery",
		Skills:   "go, sql",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)

	feed, err := e.notifications.ByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Contains(t, feed[0].Message, "Welcome")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada")
	users, notifications := e.count(t, "users"), e.count(t, "notifications")

	_, err := e.auth.Register(context.Background(), service.RegisterInput{
		Name:     "Other Ada",
		Email:    "ADA@example.com",
		Password: "another-long-secret",
	})
	assert.ErrorIs(t, err, service.ErrEmailAlreadyExists)
	assert.Equal(t, users, e.count(t, "users"))
	assert.Equal(t, notifications, e.count(t, "notifications"))
}

func TestRegisterRejectsLongContact(t *testing.T) {
	e := newEnv(t)

	_, err := e.auth.Register(context.Background(), service.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse-battery",
		Contact:  strings.Repeat("x", 256),
	})
	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, validation.ErrContactTooLong)
	assert.Zero(t, e.count(t, "users"))
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	e := newEnv(t)

	_, err := e.auth.Register(context.Background(), service.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "short",
	})
	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = e.auth.Register(context.Background(), service.RegisterInput{
		Name:     "Ada",
		Email:    "nope",
		Password: "correct-horse-battery",
	})
	require.True(t, errors.As(err, &verr))
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada")
	ctx := context.Background()

	user, err := e.auth.Login(ctx, " ADA@example.com ", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, user.ID)

	_, err = e.auth.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = e.auth.Login(ctx, "nobody@example.com", "correct-horse-battery")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestJWTRoundTrip(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada")

	token, expiry, err := e.auth.GenerateJWT(ada)
	require.NoError(t, err)
	assert.False(t, expiry.IsZero())

	id, err := e.auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, id)

	_, err = e.auth.VerifyJWT(token + "x")
	assert.Error(t, err)

	other := service.NewAuthService(e.db, e.users, e.notifications, nil, "other-secret", false, 0)
	_, err = other.VerifyJWT(token)
	assert.Error(t, err)
}

func TestJWTCookies(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "ada")
	token, expiry, err := e.auth.GenerateJWT(ada)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.auth.SetJWTCookie(rec, token, expiry)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, service.AuthCookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	e.auth.ClearJWTCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
