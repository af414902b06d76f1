package domain

import "time"

// Order is created server-side from submitted {productId, quantity} pairs.
// Prices are captured at purchase time; the client only displays them.
type Order struct {
	ID                  int64       `json:"id"`
	OrderDate           time.Time   `json:"orderDate"`
	TotalPrice          float64     `json:"totalPrice"`
	TotalConvertedPrice float64     `json:"totalConvertedPrice"`
	Items               []OrderItem `json:"items"`
}

type OrderItem struct {
	ID                       int64   `json:"id"`
	Product                  Product `json:"product"`
	Quantity                 int     `json:"quantity"`
	PriceAtPurchase          float64 `json:"priceAtPurchase"`
	ConvertedPriceAtPurchase float64 `json:"convertedPriceAtPurchase"`
}
