package inventory

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Resource is the CRUD surface of one backend collection.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "/products" to c.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: "/" + strings.Trim(path, "/")}
}

func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) item(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// List fetches the whole collection. Query may narrow it server-side.
func (r *Resource[T]) List(ctx context.Context, query map[string]string) ([]T, error) {
	var items []T
	if err := r.client.execute(ctx, http.MethodGet, r.path, nil, query, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.client.execute(ctx, http.MethodGet, r.item(id), nil, nil, &item)
	return item, err
}

// Create posts payload and returns the stored entity. An empty response body
// yields payload itself.
func (r *Resource[T]) Create(ctx context.Context, payload T) (T, error) {
	return r.write(ctx, http.MethodPost, r.path, payload, payload)
}

func (r *Resource[T]) Update(ctx context.Context, id int64, payload T) (T, error) {
	return r.write(ctx, http.MethodPut, r.item(id), payload, payload)
}

// Patch sends a partial update.
func (r *Resource[T]) Patch(ctx context.Context, id int64, fields map[string]any) (T, error) {
	var zero T
	return r.write(ctx, http.MethodPatch, r.item(id), fields, zero)
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.execute(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r *Resource[T]) write(ctx context.Context, method, path string, body any, fallback T) (T, error) {
	var raw rawBody
	if err := r.client.execute(ctx, method, path, body, nil, &raw); err != nil {
		var zero T
		return zero, err
	}
	out := fallback
	if _, err := decodeEnvelope(raw, &out); err != nil {
		return fallback, fmt.Errorf("decode %s response: %w", path, err)
	}
	return out, nil
}

// rawBody captures a response verbatim so write can decide how to decode it.
type rawBody []byte

func (b *rawBody) UnmarshalJSON(data []byte) error {
	*b = append((*b)[:0], data...)
	return nil
}
