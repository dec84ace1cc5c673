package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSearchReturnsMatches(t *testing.T) {
	svc := NewSearchService(newFakeCatalog(), 0, metrics.New(), zap.NewNop())

	res, err := svc.SearchProducts(context.Background(), uuid.New(), "tea")

	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Mint tea", res.Items[0].Name)
	assert.Empty(t, res.Hint)
	assert.Empty(t, res.Warning)
}

func TestSearchEmptyResultShowsHint(t *testing.T) {
	svc := NewSearchService(newFakeCatalog(), 0, metrics.New(), zap.NewNop())
	sessionID := uuid.New()

	products, err := svc.SearchProducts(context.Background(), sessionID, "coffee")
	require.NoError(t, err)
	assert.Empty(t, products.Items)
	assert.NotNil(t, products.Items)
	assert.Equal(t, noProductHint, products.Hint)

	customers, err := svc.SearchCustomers(context.Background(), sessionID, "nobody")
	require.NoError(t, err)
	assert.Equal(t, noCustomerHint, customers.Hint)
}

func TestSearchLookupFailureDegradesToWarning(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.err = errors.New("backend down")
	svc := NewSearchService(catalog, 0, metrics.New(), zap.NewNop())

	res, err := svc.SearchCustomers(context.Background(), uuid.New(), "has")

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, lookupWarning, res.Warning)
}

func TestSearchNewerQuerySupersedesOlder(t *testing.T) {
	catalog := newFakeCatalog()
	svc := NewSearchService(catalog, 50*time.Millisecond, metrics.New(), zap.NewNop())
	sessionID := uuid.New()
	key := searchKey{sessionID, SearchProducts}

	first := make(chan error, 1)
	go func() {
		_, err := svc.SearchProducts(context.Background(), sessionID, "m")
		first <- err
	}()
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return svc.gens[key] == 1
	}, time.Second, time.Millisecond)

	res, err := svc.SearchProducts(context.Background(), sessionID, "mi")
	require.NoError(t, err)
	assert.Equal(t, "mi", res.Term)

	assert.ErrorIs(t, <-first, ErrSearchSuperseded)
	assert.Equal(t, []string{"products:mi"}, catalog.calls)
}

func TestSearchLateResponseIsDiscarded(t *testing.T) {
	catalog := newFakeCatalog()
	slow := make(chan struct{})
	catalog.hold = map[string]chan struct{}{"m": slow}
	svc := NewSearchService(catalog, 0, metrics.New(), zap.NewNop())
	sessionID := uuid.New()

	first := make(chan error, 1)
	go func() {
		_, err := svc.SearchProducts(context.Background(), sessionID, "m")
		first <- err
	}()
	require.Eventually(t, func() bool { return catalog.called("products:m") }, time.Second, time.Millisecond)

	res, err := svc.SearchProducts(context.Background(), sessionID, "mi")
	require.NoError(t, err)
	assert.Equal(t, "mi", res.Term)
	require.Len(t, res.Items, 1)

	// the "m" lookup answers only after "mi" has been shown
	close(slow)
	assert.ErrorIs(t, <-first, ErrSearchSuperseded)
}

func TestSearchBoxesAreIndependent(t *testing.T) {
	catalog := newFakeCatalog()
	svc := NewSearchService(catalog, 30*time.Millisecond, metrics.New(), zap.NewNop())
	sessionID := uuid.New()

	errs := make(chan error, 2)
	go func() {
		_, err := svc.SearchProducts(context.Background(), sessionID, "tea")
		errs <- err
	}()
	go func() {
		_, err := svc.SearchCustomers(context.Background(), sessionID, "has")
		errs <- err
	}()

	assert.NoError(t, <-errs)
	assert.NoError(t, <-errs)
}

func TestSearchCancelledDuringDebounce(t *testing.T) {
	svc := NewSearchService(newFakeCatalog(), time.Second, metrics.New(), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SearchProducts(ctx, uuid.New(), "tea")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestForgetDropsSessionCounters(t *testing.T) {
	svc := NewSearchService(newFakeCatalog(), 0, metrics.New(), zap.NewNop())
	sessionID := uuid.New()
	_, err := svc.SearchProducts(context.Background(), sessionID, "tea")
	require.NoError(t, err)

	svc.Forget(sessionID)

	assert.Empty(t, svc.gens)
}
