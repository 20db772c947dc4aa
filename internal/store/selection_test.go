package store

import (
	"errors"
	"testing"
	"time"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

func TestSelection(t *testing.T) {
	var s Selection
	s.Select(3)
	s.Select(1)
	if !s.Toggle(2) || s.Toggle(3) {
		t.Error("unexpected toggle results")
	}
	if ids := s.IDs(); len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("expected [1 2], got %v", ids)
	}
	s.SelectAll([]models.Product{{ID: 7}})
	if s.Len() != 1 || !s.Selected(7) {
		t.Errorf("expected only 7 selected, got %v", s.IDs())
	}
}

func TestFavoritesFilter(t *testing.T) {
	var f Favorites
	f.Toggle(2)
	products := []models.Product{{ID: 1}, {ID: 2}, {ID: 3}}
	if got := f.Filter(products); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("unexpected favourites %+v", got)
	}
}

func TestComparisonLimit(t *testing.T) {
	var c Comparison
	for id := int64(1); id <= ComparisonLimit; id++ {
		if err := c.Add(models.Product{ID: id}); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	if err := c.Add(models.Product{ID: 1}); err != nil {
		t.Errorf("expected re-adding to be a no-op, got %v", err)
	}
	if err := c.Add(models.Product{ID: 9}); !errors.Is(err, ErrComparisonFull) {
		t.Errorf("expected ErrComparisonFull, got %v", err)
	}
	c.Remove(2)
	if err := c.Add(models.Product{ID: 9}); err != nil {
		t.Errorf("expected room after remove, got %v", err)
	}
	if items := c.Items(); len(items) != ComparisonLimit || items[3].ID != 9 {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestCartTotals(t *testing.T) {
	var cart Cart
	basil := models.Product{ID: 1, Price: 2, Category: "Herbs"}
	pot := models.Product{ID: 2, Price: 10, Category: "Pots"}
	cart.Add(basil, 2)
	cart.Add(basil, 1)
	cart.Add(pot, 1)

	if cart.Count() != 4 || cart.Subtotal() != 16 {
		t.Fatalf("unexpected cart count=%d subtotal=%v", cart.Count(), cart.Subtotal())
	}

	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	promos := []models.Promotion{{
		Title: "Spring", Discount: 50, Active: true, Categories: []string{"herbs"},
		StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(24 * time.Hour),
	}}
	if got := cart.Total(promos, now); got != 13 {
		t.Errorf("expected 13 after herb discount, got %v", got)
	}

	cart.SetQuantity(1, 0)
	if len(cart.Lines()) != 1 {
		t.Errorf("expected the basil line removed")
	}
}
