package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/infrastructure/backend"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/boumia-pos/pkg/apperror"
)

// SessionResolver loads the terminal session a token was issued for
type SessionResolver interface {
	Session(ctx context.Context, id uuid.UUID) (*entity.TerminalSession, error)
}

// SessionMiddleware loads the terminal session named by the token and puts
// the cashier's backend token on the request context. Must run after
// AuthMiddleware.
func SessionMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := c.Get("session_id")
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}
		id, ok := sessionID.(uuid.UUID)
		if !ok || id == uuid.Nil {
			response.Unauthorized(c, "Invalid session")
			c.Abort()
			return
		}

		session, err := sessions.Session(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, apperror.ErrSessionExpired) {
				response.Unauthorized(c, "Session has ended, please log in again")
			} else {
				response.Error(c, err)
			}
			c.Abort()
			return
		}

		c.Set("session", session)
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), session.BackendToken))

		c.Next()
	}
}
