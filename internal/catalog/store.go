package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const allCategories = "all"

// Store holds the product list fetched from the catalog service. It is
// read-only for everything except Fetch.
type Store struct {
	client port.CatalogClient
	log    *zap.Logger
	sfg    singleflight.Group

	mu       sync.RWMutex
	products []domain.Product
	loading  bool
	err      error
	fetched  bool
}

func NewStore(client port.CatalogClient, log *zap.Logger) *Store {
	return &Store{
		client: client,
		log:    log,
	}
}

// Fetch loads the products once. Concurrent callers share one request; after
// a successful load further calls return immediately. A failed load is kept
// in Err and may be retried.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.RLock()
	done := s.fetched
	s.mu.RUnlock()
	if done {
		return nil
	}

	_, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		s.mu.Lock()
		if s.fetched {
			s.mu.Unlock()
			return nil, nil
		}
		s.loading = true
		s.err = nil
		s.mu.Unlock()

		products, err := s.client.Products(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		if err != nil {
			s.err = err
			s.log.Error("catalog fetch failed", zap.Error(err))
			return nil, err
		}
		s.products = products
		s.fetched = true
		s.log.Info("catalog loaded", zap.Int("products", len(products)))
		return nil, nil
	})

	return err
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Product(nil), s.products...)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ByCategory filters by category name, case-insensitively. An empty name or
// "all" returns every product.
func (s *Store) ByCategory(name string) []domain.Product {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, allCategories) {
		return s.Products()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Product
	for _, p := range s.products {
		if strings.EqualFold(p.Category.Name, name) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.client.Categories(ctx)
}
