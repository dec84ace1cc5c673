package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
)

type idempotencyKeyID struct {
	key    string
	userID int64
}

// IdempotencyRepository stores replayable checkout responses in memory.
type IdempotencyRepository struct {
	mu   sync.Mutex
	keys map[idempotencyKeyID]entity.IdempotencyKey
}

var _ domainRepo.IdempotencyRepository = (*IdempotencyRepository)(nil)

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{keys: make(map[idempotencyKeyID]entity.IdempotencyKey)}
}

func (r *IdempotencyRepository) GetByKey(_ context.Context, key string, userID int64) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ikey, ok := r.keys[idempotencyKeyID{key, userID}]
	if !ok || ikey.IsExpired() {
		return nil, nil
	}
	return &ikey, nil
}

func (r *IdempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[idempotencyKeyID{ikey.Key, ikey.UserID}] = *ikey
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ikey := range r.keys {
		if ikey.IsExpired() {
			delete(r.keys, id)
		}
	}
	return nil
}

// Len counts stored keys, expired ones included.
func (r *IdempotencyRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}
