package domain

// Product is an externally owned catalog entry. Price is in the product's own
// currency; ConvertedPrice is in the currency the listing was requested in.
type Product struct {
	ID             int64   `json:"id"`
	Description    string  `json:"description"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Currency       string  `json:"currency"`
	Price          float64 `json:"price"`
	ConvertedPrice float64 `json:"convertedPrice"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	Stock          int     `json:"stock"`
}
