package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrQueryDisabled is returned by Refetch before the query was enabled.
var ErrQueryDisabled = errors.New("query is disabled")

// Fetcher loads the full list behind a query.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// ListFetcher adapts a resource List method.
func ListFetcher[T any](list func(ctx context.Context, query map[string]string) ([]T, error)) Fetcher[T] {
	return func(ctx context.Context) ([]T, error) { return list(ctx, nil) }
}

// QueryState is a snapshot of a query.
type QueryState[T any] struct {
	Items     []T
	Loading   bool
	Err       error
	Enabled   bool
	FetchedAt time.Time
}

// Query caches one list. It does nothing until enabled, and only refetches
// when asked. Concurrent fetches share one request.
type Query[T any] struct {
	key   string
	fetch Fetcher[T]
	group singleflight.Group

	mu    sync.RWMutex
	state QueryState[T]
	now   func() time.Time
}

func NewQuery[T any](key string, fetch Fetcher[T]) *Query[T] {
	return &Query[T]{key: key, fetch: fetch, now: time.Now}
}

func (q *Query[T]) Key() string { return q.key }

// Enable turns the query on and performs the first fetch.
func (q *Query[T]) Enable(ctx context.Context) error {
	q.mu.Lock()
	q.state.Enabled = true
	q.mu.Unlock()
	return q.Refetch(ctx)
}

// Refetch reloads the list. The previous items stay visible while loading
// and after a failed fetch.
func (q *Query[T]) Refetch(ctx context.Context) error {
	q.mu.Lock()
	if !q.state.Enabled {
		q.mu.Unlock()
		return ErrQueryDisabled
	}
	q.state.Loading = true
	q.mu.Unlock()

	_, err, _ := q.group.Do(q.key, func() (any, error) {
		items, err := q.fetch(ctx)

		q.mu.Lock()
		defer q.mu.Unlock()
		q.state.Loading = false
		q.state.Err = err
		if err == nil {
			q.state.Items = items
			q.state.FetchedAt = q.now()
		}
		return nil, err
	})
	return err
}

// EnsureLoaded enables the query on first use without refetching afterwards.
func (q *Query[T]) EnsureLoaded(ctx context.Context) error {
	q.mu.RLock()
	loaded := q.state.Enabled && !q.state.FetchedAt.IsZero()
	q.mu.RUnlock()
	if loaded {
		return nil
	}
	return q.Enable(ctx)
}

func (q *Query[T]) State() QueryState[T] {
	q.mu.RLock()
	defer q.mu.RUnlock()
	s := q.state
	s.Items = append([]T(nil), q.state.Items...)
	return s
}

func (q *Query[T]) Items() []T {
	return q.State().Items
}
