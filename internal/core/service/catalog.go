package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petuniaboards/storefront/internal/core/domain"
	"github.com/petuniaboards/storefront/internal/core/ports"
)

const defaultPageSize = 40

// CatalogStore is the product listing flow: it fetches pages of products and
// holds the current snapshot. Each refresh carries a generation token so a
// slow superseded response can never overwrite a newer one.
type CatalogStore struct {
	gateway  ports.Gateway
	session  ports.TokenSource
	pageSize int
	log      zerolog.Logger

	mu       sync.Mutex
	products []domain.Product
	gen      uint64
}

func NewCatalogStore(gateway ports.Gateway, session ports.TokenSource, pageSize int, log zerolog.Logger) *CatalogStore {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &CatalogStore{gateway: gateway, session: session, pageSize: pageSize, log: log}
}

// Refresh replaces the product snapshot with a fresh page for the given
// currency. On failure the snapshot is reset to empty so an error state is
// never mixed with stale data.
func (s *CatalogStore) Refresh(ctx context.Context, currency string) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	products, err := s.gateway.Products(ctx, currency, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer refresh superseded this response; discard it.
		s.log.Debug().Uint64("gen", gen).Msg("discarding stale product response")
		return nil
	}
	if err != nil {
		s.products = nil
		return err
	}
	s.products = products
	return nil
}

// Products returns the current snapshot.
func (s *CatalogStore) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get fetches a single product in the given currency.
func (s *CatalogStore) Get(ctx context.Context, id int64, currency string) (*domain.Product, error) {
	return s.gateway.Product(ctx, id, currency)
}

// Create adds a catalog entry; requires an authenticated session.
func (s *CatalogStore) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	token := s.session.Token()
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.gateway.CreateProduct(ctx, token, input)
}

// Update rewrites a catalog entry; requires an authenticated session.
func (s *CatalogStore) Update(ctx context.Context, id int64, input ports.ProductInput) (*domain.Product, error) {
	token := s.session.Token()
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return s.gateway.UpdateProduct(ctx, token, id, input)
}

// Delete removes a catalog entry; requires an authenticated session.
func (s *CatalogStore) Delete(ctx context.Context, id int64) error {
	token := s.session.Token()
	if token == "" {
		return domain.ErrNotAuthenticated
	}
	return s.gateway.DeleteProduct(ctx, token, id)
}
