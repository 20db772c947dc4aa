package store

import (
	"strings"
	"sync"
	"time"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

// CartLine is one product with a quantity.
type CartLine struct {
	Product  models.Product
	Quantity int
}

func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart is the storefront basket.
type Cart struct {
	mu    sync.RWMutex
	lines []CartLine
}

// Add increases the quantity of p, adding a line when needed.
func (c *Cart) Add(p models.Product, qty int) {
	if qty <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: p, Quantity: qty})
}

// SetQuantity overwrites a line's quantity; zero or less removes it.
func (c *Cart) SetQuantity(productID int64, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, line := range c.lines {
		if line.Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Lines() []CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]CartLine(nil), c.lines...)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, line := range c.Lines() {
		total += line.Quantity
	}
	return total
}

func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.Lines() {
		total += line.Subtotal()
	}
	return total
}

// Discount applies, per line, the best promotion running at `at` whose
// categories include the product's category.
func (c *Cart) Discount(promos []models.Promotion, at time.Time) float64 {
	var discount float64
	for _, line := range c.Lines() {
		best := 0.0
		for _, promo := range promos {
			if promo.RunningAt(at) && covers(promo, line.Product.Category) && promo.Discount > best {
				best = promo.Discount
			}
		}
		discount += line.Subtotal() * best / 100
	}
	return discount
}

func (c *Cart) Total(promos []models.Promotion, at time.Time) float64 {
	return c.Subtotal() - c.Discount(promos, at)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

func covers(promo models.Promotion, category string) bool {
	if len(promo.Categories) == 0 {
		return true
	}
	for _, cat := range promo.Categories {
		if strings.EqualFold(cat, category) {
			return true
		}
	}
	return false
}
