package service

import (
	"context"
	"sort"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/sangkips/boumia-pos/pkg/pagination"
)

// OrderService reads persisted POS orders back from the backend.
type OrderService struct {
	orders repository.OrderGateway
}

// NewOrderService creates a new order service
func NewOrderService(orders repository.OrderGateway) *OrderService {
	return &OrderService{orders: orders}
}

// ListOrders returns the backend's POS orders, newest first, one page at a
// time. The backend has no paging so the full list is sliced locally.
func (s *OrderService) ListOrders(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.PersistedOrder], error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].DateCreated.Time, orders[j].DateCreated.Time
		if !a.Equal(b) {
			return a.After(b)
		}
		return orders[i].ID > orders[j].ID
	})
	return pagination.Slice(orders, params), nil
}

// GetOrder resolves one order. The session's last submitted order is used
// directly; anything else is looked up in the backend list.
func (s *OrderService) GetOrder(ctx context.Context, session *entity.TerminalSession, id int64) (*entity.PersistedOrder, error) {
	if session != nil {
		var last *entity.PersistedOrder
		_ = session.Do(func(co *entity.Checkout) error {
			last = co.LastOrder()
			return nil
		})
		if last != nil && last.ID == id {
			order := *last
			return &order, nil
		}
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Order")
}
