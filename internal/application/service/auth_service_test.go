package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/duka-api/internal/application/service"
	"github.com/dukahub/duka-api/pkg/apperror"
)

func TestRegister_HashesPasswordAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)

	email := fmt.Sprintf("wanjiku-%s@example.com", uuid.NewString()[:8])
	user, err := env.authSvc.Register(context.Background(), &service.RegisterInput{
		FirstName: "Wanjiku",
		LastName:  "Kamau",
		Email:     email,
		Password:  "a-long-password",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "a-long-password", user.Password)

	_, err = env.authSvc.Register(context.Background(), &service.RegisterInput{
		FirstName: "Wanjiku",
		LastName:  "Kamau",
		Email:     email,
		Password:  "a-long-password",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authSvc.Register(context.Background(), &service.RegisterInput{
		Email:    "short@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	env := newTestEnv(t)

	user, tokens, err := env.authSvc.Login(context.Background(), env.user.Email, "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, env.user.ID, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLogin_WrongPasswordRejected(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.authSvc.Login(context.Background(), env.user.Email, "wrong-horse")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	// Unknown accounts get the same error as a bad password.
	_, _, err = env.authSvc.Login(context.Background(), "nobody@example.com", "correct-horse")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefresh_ExchangesTokenPair(t *testing.T) {
	env := newTestEnv(t)

	_, tokens, err := env.authSvc.Login(context.Background(), env.user.Email, "correct-horse")
	require.NoError(t, err)

	fresh, err := env.authSvc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)

	// Garbage is rejected without a database lookup.
	_, err = env.authSvc.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}
