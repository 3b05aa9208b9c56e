package service

import (
	"sort"
	"strings"
	"sync"

	"sabor-express/internal/domain"
)

// CartLine is one customer selection prior to order submission. Lines are
// identified by the product plus the customization, so the same product with
// different removed ingredients yields distinct lines.
type CartLine struct {
	Key                string         `json:"key"`
	Product            domain.Product `json:"product"`
	Quantity           int            `json:"quantity"`
	RemovedIngredients []string       `json:"removed_ingredients,omitempty"`
}

// LineKey builds the composite line identity from the product ID and the
// sorted removed-ingredient set.
func LineKey(productID string, removedIngredients []string) string {
	if len(removedIngredients) == 0 {
		return productID
	}
	removed := append([]string(nil), removedIngredients...)
	sort.Strings(removed)
	return productID + "|" + strings.Join(removed, ",")
}

// Cart holds one session's in-progress selection. It is not safe for
// concurrent use; CartManager serializes access.
type Cart struct {
	lines []CartLine
}

// AddLine appends a selection. A line with the same product and the same
// customization already in the cart has its quantity bumped instead; a
// different customization of the same product stays a separate line.
func (c *Cart) AddLine(product domain.Product, removedIngredients []string) CartLine {
	key := LineKey(product.ID, removedIngredients)
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity++
			return c.lines[i]
		}
	}
	line := CartLine{
		Key:                key,
		Product:            product,
		Quantity:           1,
		RemovedIngredients: append([]string(nil), removedIngredients...),
	}
	c.lines = append(c.lines, line)
	return line
}

func (c *Cart) RemoveLine(key string) bool {
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity updates a line in place. A quantity of zero or less removes the
// line; the cart never keeps a line at quantity zero.
func (c *Cart) SetQuantity(key string, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveLine(key)
	}
	for i := range c.lines {
		if c.lines[i].Key == key {
			c.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Subtotal is recomputed on every read.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, line := range c.lines {
		sum += line.Product.Price * float64(line.Quantity)
	}
	return sum
}

func (c *Cart) TotalItems() int {
	var n int
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

// CartView is the cart as returned to clients.
type CartView struct {
	Lines      []CartLine `json:"lines"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
}

// CartManager keeps one cart per browsing session. Carts are ephemeral and
// never shared across sessions.
type CartManager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewCartManager() *CartManager {
	return &CartManager{carts: make(map[string]*Cart)}
}

func (m *CartManager) cart(sessionID string) *Cart {
	c, ok := m.carts[sessionID]
	if !ok {
		c = &Cart{}
		m.carts[sessionID] = c
	}
	return c
}

func (m *CartManager) AddLine(sessionID string, product domain.Product, removedIngredients []string) CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart(sessionID).AddLine(product, removedIngredients)
}

func (m *CartManager) RemoveLine(sessionID, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart(sessionID).RemoveLine(key)
}

func (m *CartManager) SetQuantity(sessionID, key string, quantity int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart(sessionID).SetQuantity(key, quantity)
}

func (m *CartManager) Snapshot(sessionID string) CartView {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.cart(sessionID)
	return CartView{
		Lines:      c.Lines(),
		TotalItems: c.TotalItems(),
		Subtotal:   c.Subtotal(),
	}
}

func (m *CartManager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart(sessionID).Clear()
}
