package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sangkips/boumia-pos/internal/config"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/enum"
	"github.com/sangkips/boumia-pos/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zap.NewNop())
}

func TestSearchProductsForwardsTokenAndTerm(t *testing.T) {
	var gotAuth, gotPath, gotTerm string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotTerm = r.URL.Query().Get("searchTerm")
		_, _ = io.WriteString(w, `[{"id":7,"code":"TEA","name":"Mint tea","price":12.5,"isPriceChangeAllowed":true}]`)
	})

	ctx := WithToken(context.Background(), "abc")
	products, err := NewCatalogRepository(c).SearchProducts(ctx, " mint ")

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "/api/products/search/general", gotPath)
	assert.Equal(t, "mint", gotTerm)
	require.Len(t, products, 1)
	assert.True(t, products[0].PriceEditable)
	assert.True(t, decimal.RequireFromString("12.5").Equal(products[0].Price))
}

func TestEmptyTermListsEverything(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `[]`)
	})

	customers, err := NewCatalogRepository(c).SearchCustomers(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "/api/customers", gotPath)
	assert.Empty(t, customers)
}

func TestGetProductNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	p, err := NewCatalogRepository(c).GetProduct(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestBarcodeLookupEscapesCode(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = io.WriteString(w, `{"id":3,"name":"Bread","price":2}`)
	})

	p, err := NewCatalogRepository(c).GetProductByBarcode(context.Background(), "61 11")

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "/api/barcode/by-barcode/61%2011", gotPath)
}

func TestServerErrorBecomesNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := NewCatalogRepository(c).SearchProducts(context.Background(), "x")

	assert.True(t, apperror.IsKind(err, apperror.KindNetwork))
}

func TestUnauthorizedEndsSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := NewOrderGateway(c).List(context.Background())

	assert.ErrorIs(t, err, apperror.ErrSessionExpired)
}

func TestCreateOrderPostsWirePayload(t *testing.T) {
	var payload map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posorders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":41,"number":"POS-41","total":20,"status":"DONE","dateCreated":"2024-05-01T09:00:00"}`)
	})

	cart := entity.NewCart()
	cart.AddItem(entity.Product{ID: 7, Price: decimal.NewFromInt(20)})
	sub := entity.NewOrderSubmission(cart, 2, 3, enum.OrderStatusDone)

	order, err := NewOrderGateway(c).Create(context.Background(), sub)

	require.NoError(t, err)
	assert.Equal(t, int64(41), order.ID)
	assert.Equal(t, "POS-41", order.Number)
	assert.Equal(t, float64(2), payload["customerId"])
	assert.Equal(t, "DONE", payload["status"])
	items := payload["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(20), items[0].(map[string]any)["price"])
}

func TestCreateOrderTransportFailure(t *testing.T) {
	c := NewClient(&config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop())

	_, err := NewOrderGateway(c).Create(context.Background(), entity.OrderSubmission{})

	assert.True(t, apperror.IsKind(err, apperror.KindNetwork))
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok-1","user":{"id":3,"username":"amina","firstName":"Amina","lastName":"B"}}`)
	})
	auth := NewAuthGateway(c)

	token, cashier, err := auth.Login(context.Background(), "amina", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "Amina B", cashier.DisplayName())

	_, _, err = auth.Login(context.Background(), "amina", "wrong")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}
