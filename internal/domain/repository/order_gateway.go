package repository

import (
	"context"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
)

// OrderGateway persists POS orders in the store backend.
type OrderGateway interface {
	Create(ctx context.Context, sub entity.OrderSubmission) (*entity.PersistedOrder, error)
	List(ctx context.Context) ([]entity.PersistedOrder, error)
}
