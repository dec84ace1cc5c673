package repository

import (
	"context"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
)

// CatalogRepository looks up products and customers in the store backend.
// An empty term returns the full list. The Get methods return nil, nil
// when the record does not exist.
type CatalogRepository interface {
	SearchProducts(ctx context.Context, term string) ([]entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*entity.Customer, error)
}
