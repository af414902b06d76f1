// Package mockapi is an in-memory stand-in for the Petunia storefront
// backend. It exists so the client can be developed and integration-tested
// without the real API: same routes, same payloads, same error envelope.
package mockapi

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

// Conversion rates relative to USD. Good enough for a stub; the real backend
// consults an exchange service.
var rates = map[string]float64{
	"USD": 1,
	"BRL": 5.4,
	"EUR": 0.92,
}

// convert translates an amount between two known currencies; unknown
// currencies pass the amount through unchanged.
func convert(amount float64, from, to string) float64 {
	rf, okFrom := rates[strings.ToUpper(from)]
	rt, okTo := rates[strings.ToUpper(to)]
	if !okFrom || !okTo || rf == 0 {
		return amount
	}
	return amount / rf * rt
}

type account struct {
	user         domain.User
	passwordHash []byte
}

type orderItemRecord struct {
	id      int64
	product domain.Product
	qty     int
	price   float64 // at purchase, in the product's currency
}

type orderRecord struct {
	id    int64
	email string
	date  time.Time
	items []orderItemRecord
}

// view renders the record in the requested currency, recomputing converted
// prices and totals.
func (r *orderRecord) view(currency string) domain.Order {
	order := domain.Order{
		ID:        r.id,
		OrderDate: r.date,
		Items:     make([]domain.OrderItem, 0, len(r.items)),
	}
	for _, it := range r.items {
		converted := convert(it.price, it.product.Currency, currency)
		product := it.product
		product.ConvertedPrice = convert(product.Price, product.Currency, currency)
		order.Items = append(order.Items, domain.OrderItem{
			ID:                       it.id,
			Product:                  product,
			Quantity:                 it.qty,
			PriceAtPurchase:          it.price,
			ConvertedPriceAtPurchase: converted,
		})
		order.TotalPrice += it.price * float64(it.qty)
		order.TotalConvertedPrice += converted * float64(it.qty)
	}
	return order
}

// state is the whole backend dataset behind one mutex. Handler work between
// lock and unlock is pure computation, so contention is a non-issue at stub
// scale.
type state struct {
	mu       sync.Mutex
	accounts map[string]*account
	products []domain.Product
	orders   []orderRecord

	nextUserID    int64
	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
}

func newState() *state {
	return &state{
		accounts:      make(map[string]*account),
		nextUserID:    1,
		nextProductID: 1,
		nextOrderID:   1,
		nextItemID:    1,
	}
}

// seed loads an admin account, a demo shopper, and a handful of boards so a
// fresh mockapi is immediately usable.
func (s *state) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addAccountLocked("Admin", "admin@petunia.com", "petunia", domain.TypeAdmin)
	s.addAccountLocked("Alisson", "alisson@email.com", "123456", "")

	boards := []domain.Product{
		{Description: "Longboard cruiser 40\"", Brand: "Petunia", Model: "Wave Rider", Currency: "BRL", Price: 649.90, Stock: 12},
		{Description: "Street deck 8.0\" maple", Brand: "Petunia", Model: "Downtown", Currency: "BRL", Price: 299.00, Stock: 30},
		{Description: "Mini cruiser 22\"", Brand: "Petunia", Model: "Pocket", Currency: "USD", Price: 59.99, Stock: 45},
	}
	for _, b := range boards {
		b.ID = s.nextProductID
		s.nextProductID++
		s.products = append(s.products, b)
	}
}

func (s *state) addAccountLocked(name, email, password, userType string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	s.accounts[email] = &account{
		user: domain.User{
			ID:    s.nextUserID,
			Name:  name,
			Email: email,
			Type:  userType,
		},
		passwordHash: hash,
	}
	s.nextUserID++
}

func (s *state) findProductLocked(id int64) (int, bool) {
	for i, p := range s.products {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}
