package store

import (
	"sync"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

// Locations caches sites and remembers which one the operator works in.
type Locations struct {
	*Query[models.Location]

	mu      sync.RWMutex
	current int64
}

func NewLocations(client *inventory.Client) *Locations {
	return &Locations{Query: NewQuery("locations", ListFetcher(client.Locations().List))}
}

func (l *Locations) ActiveCount() int {
	count := 0
	for _, loc := range l.Items() {
		if loc.Active {
			count++
		}
	}
	return count
}

// Select makes id the current location. It reports false for unknown ids.
func (l *Locations) Select(id int64) bool {
	for _, loc := range l.Items() {
		if loc.ID == id {
			l.mu.Lock()
			l.current = id
			l.mu.Unlock()
			return true
		}
	}
	return false
}

func (l *Locations) Current() (models.Location, bool) {
	l.mu.RLock()
	id := l.current
	l.mu.RUnlock()
	for _, loc := range l.Items() {
		if loc.ID == id {
			return loc, true
		}
	}
	return models.Location{}, false
}
