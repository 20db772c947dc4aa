package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

// ComparisonLimit caps how many products can be compared side by side.
const ComparisonLimit = 4

// ErrComparisonFull is returned when adding beyond ComparisonLimit.
var ErrComparisonFull = errors.New("comparison is full")

type idSet struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

func (s *idSet) add(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = map[int64]struct{}{}
	}
	s.ids[id] = struct{}{}
}

func (s *idSet) remove(id int64) {
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
}

// toggle flips membership and reports whether id is now a member.
func (s *idSet) toggle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = map[int64]struct{}{}
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *idSet) has(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *idSet) list() []int64 {
	s.mu.RLock()
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *idSet) clear() {
	s.mu.Lock()
	s.ids = nil
	s.mu.Unlock()
}

// Selection is the set of products ticked in a table for bulk actions.
type Selection struct{ set idSet }

func (s *Selection) Select(id int64)        { s.set.add(id) }
func (s *Selection) Deselect(id int64)      { s.set.remove(id) }
func (s *Selection) Toggle(id int64) bool   { return s.set.toggle(id) }
func (s *Selection) Selected(id int64) bool { return s.set.has(id) }
func (s *Selection) IDs() []int64           { return s.set.list() }
func (s *Selection) Len() int               { return len(s.set.list()) }
func (s *Selection) Clear()                 { s.set.clear() }

// SelectAll replaces the selection with every given product.
func (s *Selection) SelectAll(products []models.Product) {
	s.set.clear()
	for _, p := range products {
		s.set.add(p.ID)
	}
}

// Favorites is the operator's starred products.
type Favorites struct{ set idSet }

func (f *Favorites) Toggle(id int64) bool     { return f.set.toggle(id) }
func (f *Favorites) IsFavorite(id int64) bool { return f.set.has(id) }
func (f *Favorites) IDs() []int64             { return f.set.list() }

// Filter keeps the favourite products in their original order.
func (f *Favorites) Filter(products []models.Product) []models.Product {
	var out []models.Product
	for _, p := range products {
		if f.set.has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// Comparison holds up to ComparisonLimit products in insertion order.
type Comparison struct {
	mu    sync.RWMutex
	items []models.Product
}

// Add appends p. Adding a product already present is a no-op.
func (c *Comparison) Add(p models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.items {
		if existing.ID == p.ID {
			return nil
		}
	}
	if len(c.items) >= ComparisonLimit {
		return ErrComparisonFull
	}
	c.items = append(c.items, p)
	return nil
}

func (c *Comparison) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.items {
		if p.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Comparison) Items() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.items...)
}

func (c *Comparison) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
