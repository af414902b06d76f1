package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/petuniaboards/storefront/internal/core/domain"
	"github.com/petuniaboards/storefront/internal/core/ports"
)

// OrderStore submits the cart as an order and maintains the paginated order
// history (refresh replaces, load-more appends). hasMore is inferred from an
// empty page because the backend exposes no total-count metadata; generation
// tokens keep a stale refresh from clobbering a newer one.
type OrderStore struct {
	gateway  ports.Gateway
	cart     *CartStore
	session  ports.TokenSource
	pageSize int
	log      zerolog.Logger

	mu      sync.Mutex
	orders  []domain.Order
	page    int
	hasMore bool
	busy    bool
	gen     uint64
}

func NewOrderStore(gateway ports.Gateway, cart *CartStore, session ports.TokenSource, pageSize int, log zerolog.Logger) *OrderStore {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &OrderStore{gateway: gateway, cart: cart, session: session, pageSize: pageSize, log: log}
}

// Submit maps the cart lines into {productId, quantity} pairs in line order
// and posts them as one order. Success clears the cart and returns the
// confirmed order; any failure leaves the cart untouched.
func (s *OrderStore) Submit(ctx context.Context) (*domain.Order, error) {
	token := s.session.Token()
	if token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]ports.OrderItemInput, 0, len(lines))
	for _, l := range lines {
		items = append(items, ports.OrderItemInput{ProductID: l.Product.ID, Quantity: l.Quantity})
	}

	order, err := s.gateway.CreateOrder(ctx, token, items)
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.log.Info().Int64("order_id", order.ID).Int("items", len(items)).Msg("order placed")
	return order, nil
}

// Refresh replaces the history with page 0. On failure the list is emptied so
// an error state never shows stale orders.
func (s *OrderStore) Refresh(ctx context.Context, currency string) error {
	token := s.session.Token()
	if token == "" {
		return domain.ErrNotAuthenticated
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	orders, err := s.gateway.Orders(ctx, token, currency, 0, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debug().Uint64("gen", gen).Msg("discarding stale order response")
		return nil
	}
	if err != nil {
		s.orders = nil
		s.page = 0
		s.hasMore = false
		return err
	}
	s.orders = orders
	s.page = 0
	s.hasMore = len(orders) > 0
	return nil
}

// LoadMore appends the next page. An empty page marks the end of the history
// and appends nothing. No-op while exhausted or while another load runs; a
// concurrent Refresh invalidates the in-flight page.
func (s *OrderStore) LoadMore(ctx context.Context, currency string) error {
	token := s.session.Token()
	if token == "" {
		return domain.ErrNotAuthenticated
	}

	s.mu.Lock()
	if !s.hasMore || s.busy {
		s.mu.Unlock()
		return nil
	}
	s.busy = true
	gen := s.gen
	next := s.page + 1
	s.mu.Unlock()

	orders, err := s.gateway.Orders(ctx, token, currency, next, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if gen != s.gen {
		return nil
	}
	if err != nil {
		// Keep the list; the user re-triggers load-more to retry.
		return err
	}
	if len(orders) == 0 {
		s.hasMore = false
		return nil
	}
	s.orders = append(s.orders, orders...)
	s.page = next
	return nil
}

// Orders returns a snapshot copy of the loaded history.
func (s *OrderStore) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// HasMore reports whether another page may exist.
func (s *OrderStore) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}
