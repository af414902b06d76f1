package service

import (
	"context"

	"github.com/petuniaboards/storefront/internal/core/domain"
	"github.com/petuniaboards/storefront/internal/core/ports"
)

// stubGateway lets each test wire only the calls it expects; everything else
// returns zero values.
type stubGateway struct {
	signUpFn        func(ctx context.Context, reg domain.Registration) error
	signInFn        func(ctx context.Context, creds domain.Credentials) (*domain.User, string, error)
	productsFn      func(ctx context.Context, currency string, size int) ([]domain.Product, error)
	productFn       func(ctx context.Context, id int64, currency string) (*domain.Product, error)
	createProductFn func(ctx context.Context, token string, input ports.ProductInput) (*domain.Product, error)
	updateProductFn func(ctx context.Context, token string, id int64, input ports.ProductInput) (*domain.Product, error)
	deleteProductFn func(ctx context.Context, token string, id int64) error
	createOrderFn   func(ctx context.Context, token string, items []ports.OrderItemInput) (*domain.Order, error)
	ordersFn        func(ctx context.Context, token, currency string, page, size int) ([]domain.Order, error)
}

func (g *stubGateway) SignUp(ctx context.Context, reg domain.Registration) error {
	if g.signUpFn == nil {
		return nil
	}
	return g.signUpFn(ctx, reg)
}

func (g *stubGateway) SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
	if g.signInFn == nil {
		return nil, "", nil
	}
	return g.signInFn(ctx, creds)
}

func (g *stubGateway) Products(ctx context.Context, currency string, size int) ([]domain.Product, error) {
	if g.productsFn == nil {
		return nil, nil
	}
	return g.productsFn(ctx, currency, size)
}

func (g *stubGateway) Product(ctx context.Context, id int64, currency string) (*domain.Product, error) {
	if g.productFn == nil {
		return nil, nil
	}
	return g.productFn(ctx, id, currency)
}

func (g *stubGateway) CreateProduct(ctx context.Context, token string, input ports.ProductInput) (*domain.Product, error) {
	if g.createProductFn == nil {
		return nil, nil
	}
	return g.createProductFn(ctx, token, input)
}

func (g *stubGateway) UpdateProduct(ctx context.Context, token string, id int64, input ports.ProductInput) (*domain.Product, error) {
	if g.updateProductFn == nil {
		return nil, nil
	}
	return g.updateProductFn(ctx, token, id, input)
}

func (g *stubGateway) DeleteProduct(ctx context.Context, token string, id int64) error {
	if g.deleteProductFn == nil {
		return nil
	}
	return g.deleteProductFn(ctx, token, id)
}

func (g *stubGateway) CreateOrder(ctx context.Context, token string, items []ports.OrderItemInput) (*domain.Order, error) {
	if g.createOrderFn == nil {
		return nil, nil
	}
	return g.createOrderFn(ctx, token, items)
}

func (g *stubGateway) Orders(ctx context.Context, token, currency string, page, size int) ([]domain.Order, error) {
	if g.ordersFn == nil {
		return nil, nil
	}
	return g.ordersFn(ctx, token, currency, page, size)
}

// memCredStore is an in-memory ports.CredentialStore that counts writes so
// tests can assert bootstrap never re-persists.
type memCredStore struct {
	creds   *domain.Credentials
	saves   int
	deletes int
}

func (m *memCredStore) Save(_ context.Context, creds domain.Credentials) error {
	c := creds
	m.creds = &c
	m.saves++
	return nil
}

func (m *memCredStore) Load(_ context.Context) (domain.Credentials, error) {
	if m.creds == nil {
		return domain.Credentials{}, domain.ErrNoCredentials
	}
	return *m.creds, nil
}

func (m *memCredStore) Delete(_ context.Context) error {
	m.creds = nil
	m.deletes++
	return nil
}

// staticToken satisfies ports.TokenSource for flow-store tests.
type staticToken string

func (t staticToken) Token() string { return string(t) }

func testProduct(id int64, price float64) domain.Product {
	return domain.Product{
		ID:             id,
		Description:    "board",
		Brand:          "Petunia",
		Currency:       "BRL",
		Price:          price,
		ConvertedPrice: price,
	}
}
