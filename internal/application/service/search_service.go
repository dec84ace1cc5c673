package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/pkg/metrics"
	"go.uber.org/zap"
)

// DefaultSearchDebounce is the quiet period before a lookup is issued.
const DefaultSearchDebounce = 400 * time.Millisecond

const (
	noProductHint  = "There is no product with this search value"
	noCustomerHint = "There is no customer with this search value"
	lookupWarning  = "Search is unavailable right now, showing no results"
)

// ErrSearchSuperseded means a newer query from the same session replaced
// this one; its result must not be shown.
var ErrSearchSuperseded = errors.New("search superseded by a newer query")

// SearchKind separates the product and customer search boxes.
type SearchKind string

const (
	SearchProducts  SearchKind = "product"
	SearchCustomers SearchKind = "customer"
)

// SearchResult is what the search box shows. Hint is set for an empty
// result, Warning when the lookup failed.
type SearchResult[T any] struct {
	Term    string `json:"term"`
	Items   []T    `json:"items"`
	Hint    string `json:"hint,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type searchKey struct {
	session uuid.UUID
	kind    SearchKind
}

// SearchService debounces catalog lookups per session and search box. Each
// query takes a generation number; only the latest generation may publish.
type SearchService struct {
	catalog  repository.CatalogRepository
	debounce time.Duration
	metrics  *metrics.Metrics
	log      *zap.Logger

	mu   sync.Mutex
	gens map[searchKey]uint64
}

// NewSearchService creates a new search service
func NewSearchService(catalog repository.CatalogRepository, debounce time.Duration, m *metrics.Metrics, log *zap.Logger) *SearchService {
	return &SearchService{
		catalog:  catalog,
		debounce: debounce,
		metrics:  m,
		log:      log.Named("search"),
		gens:     make(map[searchKey]uint64),
	}
}

func (s *SearchService) begin(k searchKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[k]++
	return s.gens[k]
}

func (s *SearchService) latest(k searchKey, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[k] == gen
}

// Forget drops the session's generation counters.
func (s *SearchService) Forget(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.gens, searchKey{sessionID, SearchProducts})
	delete(s.gens, searchKey{sessionID, SearchCustomers})
}

// SearchProducts runs a debounced product lookup for the session.
func (s *SearchService) SearchProducts(ctx context.Context, sessionID uuid.UUID, term string) (*SearchResult[entity.Product], error) {
	return search(ctx, s, searchKey{sessionID, SearchProducts}, term, noProductHint, s.catalog.SearchProducts)
}

// SearchCustomers runs a debounced customer lookup for the session.
func (s *SearchService) SearchCustomers(ctx context.Context, sessionID uuid.UUID, term string) (*SearchResult[entity.Customer], error) {
	return search(ctx, s, searchKey{sessionID, SearchCustomers}, term, noCustomerHint, s.catalog.SearchCustomers)
}

func search[T any](
	ctx context.Context,
	s *SearchService,
	k searchKey,
	term string,
	emptyHint string,
	lookup func(context.Context, string) ([]T, error),
) (*SearchResult[T], error) {
	gen := s.begin(k)

	if s.debounce > 0 {
		timer := time.NewTimer(s.debounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if !s.latest(k, gen) {
		s.metrics.SearchCompleted(string(k.kind), "superseded")
		return nil, ErrSearchSuperseded
	}

	items, err := lookup(ctx, term)

	if !s.latest(k, gen) {
		s.metrics.SearchCompleted(string(k.kind), "superseded")
		return nil, ErrSearchSuperseded
	}

	result := &SearchResult[T]{Term: term, Items: items}
	switch {
	case err != nil:
		s.log.Warn("catalog lookup failed",
			zap.String("kind", string(k.kind)),
			zap.String("term", term),
			zap.Error(err),
		)
		result.Items = []T{}
		result.Warning = lookupWarning
		s.metrics.SearchCompleted(string(k.kind), "error")
	case len(items) == 0:
		result.Items = []T{}
		result.Hint = emptyHint
		s.metrics.SearchCompleted(string(k.kind), "empty")
	default:
		s.metrics.SearchCompleted(string(k.kind), "hit")
	}
	return result, nil
}
