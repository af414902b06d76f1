package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/petuniaboards/storefront/internal/core/domain"
	"github.com/petuniaboards/storefront/internal/core/ports"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGateway(NewClient(srv.URL, 5*time.Second, zerolog.Nop()))
}

func TestGateway_SignIn(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/signin" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("signin must not carry an Authorization header")
		}

		var creds domain.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if creds.Email != "alisson@email.com" || creds.Password != "123456" {
			t.Errorf("unexpected credentials: %+v", creds)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": 1, "name": "Alisson", "email": creds.Email},
			"token": "tok-123",
		})
	})

	user, token, err := gateway.SignIn(context.Background(), domain.Credentials{Email: "alisson@email.com", Password: "123456"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}
	if user == nil || user.Name != "Alisson" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestGateway_Products_PathAndEnvelope(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/products/BRL" {
			t.Errorf("path = %q, want /products/BRL", got)
		}
		if got := r.URL.Query().Get("size"); got != "5" {
			t.Errorf("size = %q, want 5", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"id": 1, "description": "Fish board", "price": 100, "convertedPrice": 540},
			},
		})
	})

	products, err := gateway.Products(context.Background(), "BRL", 5)
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if products[0].ConvertedPrice != 540 {
		t.Errorf("convertedPrice = %v, want 540", products[0].ConvertedPrice)
	}
}

func TestGateway_CreateOrder_BodyAndBearer(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ws/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", auth)
		}

		var body struct {
			Items []struct {
				ProductID int64 `json:"productId"`
				Quantity  int   `json:"quantity"`
			} `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Items) != 2 || body.Items[0].ProductID != 1 || body.Items[0].Quantity != 2 {
			t.Errorf("unexpected items: %+v", body.Items)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": 42})
	})

	order, err := gateway.CreateOrder(context.Background(), "tok", []ports.OrderItemInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != 42 {
		t.Errorf("order id = %d, want 42", order.ID)
	}
}

func TestGateway_ErrorEnvelope(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
	})

	_, _, err := gateway.SignIn(context.Background(), domain.Credentials{Email: "a@b.com", Password: "wrong"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("want *RequestError, got %T: %v", err, err)
	}
	if reqErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", reqErr.Status)
	}
	if reqErr.Message != "invalid email or password" {
		t.Errorf("message = %q, want server message", reqErr.Message)
	}
}

func TestGateway_ErrorWithoutEnvelope(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := gateway.Products(context.Background(), "BRL", 5)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("want *RequestError, got %T: %v", err, err)
	}
	if reqErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", reqErr.Status)
	}
	if reqErr.Message != "request failed with status 502" {
		t.Errorf("message = %q, want generic fallback", reqErr.Message)
	}
}

func TestGateway_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore
	gateway := NewGateway(NewClient(srv.URL, time.Second, zerolog.Nop()))

	_, err := gateway.Products(context.Background(), "BRL", 5)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("want *RequestError, got %T: %v", err, err)
	}
	if reqErr.Status != 0 {
		t.Errorf("status = %d, want 0 for transport errors", reqErr.Status)
	}
	if reqErr.Message == "" {
		t.Error("transport error must carry a message")
	}
}

func TestGateway_OrdersPath(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/ws/orders/EUR" {
			t.Errorf("path = %q, want /ws/orders/EUR", got)
		}
		q := r.URL.Query()
		if q.Get("size") != "10" || q.Get("page") != "2" {
			t.Errorf("query = %q, want size=10&page=2", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	})

	orders, err := gateway.Orders(context.Background(), "tok", "EUR", 2, 10)
	if err != nil {
		t.Fatalf("Orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("got %d orders, want 0", len(orders))
	}
}
