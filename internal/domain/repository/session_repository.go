package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
)

// SessionRepository holds the open terminal sessions. Sessions carry live
// checkout state and are never serialised.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.TerminalSession) error
	// Get returns nil, nil for an unknown id.
	Get(ctx context.Context, id uuid.UUID) (*entity.TerminalSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
