package service

import (
	"sync"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

// CartStore holds the pre-checkout collection of product+quantity lines.
// Lines keep insertion order for display; the map index keyed by product ID
// enforces at most one line per product. Count and totals are recomputed from
// the lines on every read rather than maintained as counters.
type CartStore struct {
	mu    sync.Mutex
	lines []domain.CartLine
	index map[int64]int
}

func NewCartStore() *CartStore {
	return &CartStore{index: make(map[int64]int)}
}

// Add merges by product ID, summing quantities; unknown products append a new
// line. A quantity below 1 is treated as 1.
func (c *CartStore) Add(product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[product.ID]; ok {
		c.lines[i].Quantity += quantity
		return
	}
	c.index[product.ID] = len(c.lines)
	c.lines = append(c.lines, domain.CartLine{Product: product, Quantity: quantity})
}

// Increase adds one to the matching line; no-op for absent ids.
func (c *CartStore) Increase(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[id]; ok {
		c.lines[i].Quantity++
	}
}

// Decrease subtracts one from the matching line, removing it when the
// quantity reaches zero; no-op for absent ids.
func (c *CartStore) Decrease(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return
	}
	c.lines[i].Quantity--
	if c.lines[i].Quantity <= 0 {
		c.removeAt(i)
	}
}

// Remove deletes the matching line unconditionally.
func (c *CartStore) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[id]; ok {
		c.removeAt(i)
	}
}

// removeAt deletes position i and reindexes the lines that shifted left.
func (c *CartStore) removeAt(i int) {
	delete(c.index, c.lines[i].Product.ID)
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].Product.ID] = j
	}
}

// Clear empties the cart.
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.index = make(map[int64]int)
}

// Lines returns a snapshot copy in insertion order.
func (c *CartStore) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count is the badge value: the sum of all line quantities.
func (c *CartStore) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Total sums quantity times unit price over all lines.
func (c *CartStore) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.lines {
		total += l.Total()
	}
	return total
}

// ConvertedTotal sums quantity times converted unit price, which is what the
// cart screen displays.
func (c *CartStore) ConvertedTotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, l := range c.lines {
		total += l.ConvertedTotal()
	}
	return total
}
