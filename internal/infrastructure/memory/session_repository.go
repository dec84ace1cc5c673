package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
)

// SessionRepository keeps terminal sessions in process memory. Sessions
// hold a live checkout, so they are never written to the database.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entity.TerminalSession
}

var _ domainRepo.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[uuid.UUID]*entity.TerminalSession)}
}

func (r *SessionRepository) Save(_ context.Context, s *entity.TerminalSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id uuid.UUID) (*entity.TerminalSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id], nil
}

func (r *SessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Len is the number of open sessions.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
