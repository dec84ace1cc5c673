package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sangkips/boumia-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
)

type catalogClient struct {
	*Client
}

// NewCatalogRepository serves product and customer lookups from the backend.
func NewCatalogRepository(c *Client) domainRepo.CatalogRepository {
	return &catalogClient{Client: c}
}

func searchQuery(term string) (string, url.Values) {
	return "/search/general", url.Values{"searchTerm": {term}}
}

func (c *catalogClient) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	path, query := "/api/products", url.Values(nil)
	if term = strings.TrimSpace(term); term != "" {
		suffix, q := searchQuery(term)
		path, query = path+suffix, q
	}

	var products []entity.Product
	if _, err := c.do(ctx, http.MethodGet, path, query, nil, &products); err != nil {
		return nil, wrap("product search failed", err)
	}
	return products, nil
}

func (c *catalogClient) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	found, err := c.do(ctx, http.MethodGet, "/api/products/"+strconv.FormatInt(id, 10), nil, nil, &p)
	if err != nil {
		return nil, wrap("product lookup failed", err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (c *catalogClient) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var p entity.Product
	found, err := c.do(ctx, http.MethodGet, "/api/barcode/by-barcode/"+url.PathEscape(barcode), nil, nil, &p)
	if err != nil {
		return nil, wrap("barcode lookup failed", err)
	}
	if !found || p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (c *catalogClient) SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error) {
	path, query := "/api/customers", url.Values(nil)
	if term = strings.TrimSpace(term); term != "" {
		suffix, q := searchQuery(term)
		path, query = path+suffix, q
	}

	var customers []entity.Customer
	if _, err := c.do(ctx, http.MethodGet, path, query, nil, &customers); err != nil {
		return nil, wrap("customer search failed", err)
	}
	return customers, nil
}

func (c *catalogClient) GetCustomer(ctx context.Context, id int64) (*entity.Customer, error) {
	var cust entity.Customer
	found, err := c.do(ctx, http.MethodGet, "/api/customers/"+strconv.FormatInt(id, 10), nil, nil, &cust)
	if err != nil {
		return nil, wrap("customer lookup failed", err)
	}
	if !found {
		return nil, nil
	}
	return &cust, nil
}
