package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/boumia-pos/internal/infrastructure/memory"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/sangkips/boumia-pos/pkg/metrics"
	"github.com/sangkips/boumia-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (*AuthService, *memory.SessionRepository, *utils.JWTManager) {
	sessions := memory.NewSessionRepository()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	search := NewSearchService(newFakeCatalog(), 0, metrics.New(), zap.NewNop())
	svc := NewAuthService(&fakeAuth{password: "secret"}, sessions, jwtManager, search, zap.NewNop())
	return svc, sessions, jwtManager
}

func TestLoginOpensSession(t *testing.T) {
	svc, sessions, jwtManager := newAuthFixture()
	ctx := context.Background()

	out, err := svc.Login(ctx, &LoginInput{Username: " amina ", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "amina", out.Cashier.Username)
	assert.Equal(t, 1, sessions.Len())

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.SessionID, claims.SessionID)
	assert.Equal(t, int64(3), claims.UserID)

	session, err := svc.Session(ctx, out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", session.BackendToken)
}

func TestLoginRejected(t *testing.T) {
	svc, sessions, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &LoginInput{Username: "amina", Password: "nope"})

	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	assert.Equal(t, 0, sessions.Len())
}

func TestLoginRequiresBothFields(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &LoginInput{Username: "  "})

	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestLogoutEndsSession(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	out, err := svc.Login(ctx, &LoginInput{Username: "amina", Password: "secret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, out.SessionID))

	_, err = svc.Session(ctx, out.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionExpired)
}
