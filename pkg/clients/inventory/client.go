package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/config"
)

// apiSegment marks URLs that already target the REST surface. A 401 on such a
// URL clears the token but leaves navigation to the caller.
const apiSegment = "/api/"

// Client is the single request-sending object shared by every console feature.
type Client struct {
	httpClient *resty.Client
	cfg        config.APIConfig
	tokens     TokenStore
	navigator  Navigator
	logger     *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithTokenStore sets where the bearer token is read from and cleared.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.tokens = store }
}

// WithNavigator sets the navigator used for the login redirect.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.navigator = nav }
}

// WithLogger sets the client logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient reuses an existing transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = resty.NewWithClient(hc)
		}
	}
}

// NewClient builds an inventory API client using the provided configuration values.
func NewClient(cfg config.APIConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: resty.New(),
		cfg:        cfg,
		tokens:     StaticToken(""),
		navigator:  nopNavigator{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c.httpClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		OnBeforeRequest(c.attachToken).
		OnAfterResponse(c.handleUnauthorized)

	return c
}

// WithSession returns a client sharing this client's transport but reading its
// token from tokens and redirecting through nav. The session gets its own
// http.Client without a cookie jar, so callers never see each other's cookies.
func (c *Client) WithSession(tokens TokenStore, nav Navigator) *Client {
	hc := *c.httpClient.GetClient()
	hc.Jar = nil
	return NewClient(c.cfg,
		WithHTTPClient(&hc),
		WithTokenStore(tokens),
		WithNavigator(nav),
		WithLogger(c.logger),
	)
}

// Tokens exposes the configured token store.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

func (c *Client) attachToken(_ *resty.Client, r *resty.Request) error {
	token, err := c.tokens.Token()
	if err != nil {
		c.logger.Warn("read bearer token", zap.Error(err))
		return nil
	}
	if token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) handleUnauthorized(_ *resty.Client, resp *resty.Response) error {
	c.logger.Debug("inventory api response",
		zap.String("method", resp.Request.Method),
		zap.String("url", resolvedURL(resp)),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", resp.Time()),
	)

	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}

	if err := c.tokens.Clear(); err != nil {
		c.logger.Warn("clear bearer token", zap.Error(err))
	}

	if !strings.Contains(resolvedURL(resp), apiSegment) && c.navigator.Location() != LoginPath {
		c.logger.Info("session expired, redirecting to login")
		c.navigator.Navigate(LoginPath)
	}
	return nil
}

func resolvedURL(resp *resty.Response) string {
	if resp.Request == nil {
		return ""
	}
	if resp.Request.RawRequest != nil && resp.Request.RawRequest.URL != nil {
		return resp.Request.RawRequest.URL.String()
	}
	return resp.Request.URL
}

func (c *Client) execute(ctx context.Context, method, path string, body any, query map[string]string, out any) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}
	if resp.IsError() {
		return &APIError{
			Status:  resp.StatusCode(),
			Message: messageFrom(resp.Body()),
			URL:     resolvedURL(resp),
		}
	}
	if out == nil {
		return nil
	}
	if _, err := decodeEnvelope(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// decodeEnvelope accepts a bare document or one wrapped as {"data": ...}.
// It reports false when the body was empty and out was left untouched.
func decodeEnvelope(body []byte, out any) (bool, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return false, nil
	}
	if body[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
			return true, json.Unmarshal(envelope.Data, out)
		}
	}
	return true, json.Unmarshal(body, out)
}
