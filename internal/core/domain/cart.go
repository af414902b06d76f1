package domain

// CartLine pairs a product with the quantity the user intends to order.
// Quantity is always > 0; a line that would reach zero is removed instead.
type CartLine struct {
	Product  Product
	Quantity int
}

// Total is the line total in the product's own currency.
func (l CartLine) Total() float64 {
	return float64(l.Quantity) * l.Product.Price
}

// ConvertedTotal is the line total in the listing currency.
func (l CartLine) ConvertedTotal() float64 {
	return float64(l.Quantity) * l.Product.ConvertedPrice
}
