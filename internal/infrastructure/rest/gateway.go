package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/petuniaboards/storefront/internal/core/domain"
	"github.com/petuniaboards/storefront/internal/core/ports"
)

// Gateway implements ports.Gateway over a Client.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

var _ ports.Gateway = (*Gateway)(nil)

// signinResponse is the /auth/signin success body.
type signinResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// productPage and orderPage mirror the backend's paged envelopes.
type productPage struct {
	Content []domain.Product `json:"content"`
}

type orderPage struct {
	Content []domain.Order `json:"content"`
}

func (g *Gateway) SignUp(ctx context.Context, reg domain.Registration) error {
	return g.client.do(ctx, http.MethodPost, "/auth/signup", "", reg, nil)
}

func (g *Gateway) SignIn(ctx context.Context, creds domain.Credentials) (*domain.User, string, error) {
	var resp signinResponse
	if err := g.client.do(ctx, http.MethodPost, "/auth/signin", "", creds, &resp); err != nil {
		return nil, "", err
	}
	return resp.User, resp.Token, nil
}

func (g *Gateway) Products(ctx context.Context, currency string, size int) ([]domain.Product, error) {
	var page productPage
	path := fmt.Sprintf("/products/%s?size=%d", url.PathEscape(currency), size)
	if err := g.client.do(ctx, http.MethodGet, path, "", nil, &page); err != nil {
		return nil, err
	}
	return page.Content, nil
}

func (g *Gateway) Product(ctx context.Context, id int64, currency string) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d/%s", id, url.PathEscape(currency))
	if err := g.client.do(ctx, http.MethodGet, path, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *Gateway) CreateProduct(ctx context.Context, token string, input ports.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := g.client.do(ctx, http.MethodPost, "/ws/products", token, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *Gateway) UpdateProduct(ctx context.Context, token string, id int64, input ports.ProductInput) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/ws/products/%d", id)
	if err := g.client.do(ctx, http.MethodPut, path, token, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *Gateway) DeleteProduct(ctx context.Context, token string, id int64) error {
	return g.client.do(ctx, http.MethodDelete, fmt.Sprintf("/ws/products/%d", id), token, nil, nil)
}

// createOrderRequest is the /ws/orders submission body.
type createOrderRequest struct {
	Items []ports.OrderItemInput `json:"items"`
}

func (g *Gateway) CreateOrder(ctx context.Context, token string, items []ports.OrderItemInput) (*domain.Order, error) {
	var order domain.Order
	if err := g.client.do(ctx, http.MethodPost, "/ws/orders", token, createOrderRequest{Items: items}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *Gateway) Orders(ctx context.Context, token, currency string, page, size int) ([]domain.Order, error) {
	var resp orderPage
	path := fmt.Sprintf("/ws/orders/%s?size=%d&page=%d", url.PathEscape(currency), size, page)
	if err := g.client.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Content, nil
}
