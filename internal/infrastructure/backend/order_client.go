package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
)

const posOrdersPath = "/api/posorders"

type orderClient struct {
	*Client
}

// NewOrderGateway persists and lists POS orders through the backend.
func NewOrderGateway(c *Client) domainRepo.OrderGateway {
	return &orderClient{Client: c}
}

func (c *orderClient) Create(ctx context.Context, sub entity.OrderSubmission) (*entity.PersistedOrder, error) {
	var order entity.PersistedOrder
	found, err := c.do(ctx, http.MethodPost, posOrdersPath, nil, sub, &order)
	if err == nil && !found {
		err = errors.New("order endpoint not found")
	}
	if err != nil {
		return nil, wrap("order submission failed", err)
	}
	return &order, nil
}

func (c *orderClient) List(ctx context.Context) ([]entity.PersistedOrder, error) {
	var orders []entity.PersistedOrder
	if _, err := c.do(ctx, http.MethodGet, posOrdersPath, nil, nil, &orders); err != nil {
		return nil, wrap("order list failed", err)
	}
	return orders, nil
}
