package ports

import (
	"context"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

// ProductInput carries the fields an admin may set when creating or updating
// a catalog entry.
type ProductInput struct {
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Currency    string  `json:"currency"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Stock       int     `json:"stock"`
}

// OrderItemInput is one {productId, quantity} pair of an order submission.
type OrderItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Gateway is the remote storefront API. Implementations convert every
// remote, application, or transport failure into a normalized error value;
// nothing else crosses this boundary.
type Gateway interface {
	SignUp(ctx context.Context, reg domain.Registration) error
	SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, string, error)

	Products(ctx context.Context, currency string, size int) ([]domain.Product, error)
	Product(ctx context.Context, id int64, currency string) (*domain.Product, error)
	CreateProduct(ctx context.Context, token string, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token string, id int64) error

	CreateOrder(ctx context.Context, token string, items []OrderItemInput) (*domain.Order, error)
	Orders(ctx context.Context, token, currency string, page, size int) ([]domain.Order, error)
}
