package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/sangkips/boumia-pos/pkg/utils"
	"go.uber.org/zap"
)

// AuthService opens and closes terminal sessions. Credentials are checked
// by the store backend; the agent only signs its own session token.
type AuthService struct {
	authGateway repository.AuthGateway
	sessions    repository.SessionRepository
	jwtManager  *utils.JWTManager
	search      *SearchService
	log         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	authGateway repository.AuthGateway,
	sessions repository.SessionRepository,
	jwtManager *utils.JWTManager,
	search *SearchService,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		authGateway: authGateway,
		sessions:    sessions,
		jwtManager:  jwtManager,
		search:      search,
		log:         log.Named("auth"),
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Cashier     entity.Cashier
	SessionID   uuid.UUID
	AccessToken string
}

// Login authenticates the cashier with the backend and opens a session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperror.NewValidationError("Username and password are required")
	}

	token, cashier, err := s.authGateway.Login(ctx, username, input.Password)
	if err != nil {
		s.log.Info("login rejected", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	session := entity.NewTerminalSession(*cashier, token)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(session.ID, cashier.ID, cashier.Username)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, err
	}

	s.log.Info("session opened",
		zap.String("session_id", session.ID.String()),
		zap.Int64("cashier_id", cashier.ID),
	)
	return &LoginOutput{
		Cashier:     session.Cashier,
		SessionID:   session.ID,
		AccessToken: accessToken,
	}, nil
}

// Session resolves an open session. A session that was logged out or lost
// in a restart yields ErrSessionExpired.
func (s *AuthService) Session(ctx context.Context, id uuid.UUID) (*entity.TerminalSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionExpired
	}
	return session, nil
}

// Logout closes the session and discards its cart.
func (s *AuthService) Logout(ctx context.Context, id uuid.UUID) error {
	if s.search != nil {
		s.search.Forget(id)
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("session closed", zap.String("session_id", id.String()))
	return nil
}
