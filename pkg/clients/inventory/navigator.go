package inventory

import "sync"

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// Navigator is the client's view of the current page.
type Navigator interface {
	Location() string
	Navigate(path string)
}

// PageNavigator tracks a location and remembers the last redirect.
type PageNavigator struct {
	mu         sync.Mutex
	location   string
	redirected string
}

func NewPageNavigator(location string) *PageNavigator {
	return &PageNavigator{location: location}
}

func (n *PageNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *PageNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = path
	n.redirected = path
}

// Redirected returns the last path navigated to, or "" when none happened.
func (n *PageNavigator) Redirected() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.redirected
}

type nopNavigator struct{}

func (nopNavigator) Location() string { return "" }
func (nopNavigator) Navigate(string)  {}
