package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

// Login exchanges credentials for a token and persists it when the store can.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResult, error) {
	var result models.LoginResult
	if err := c.execute(ctx, http.MethodPost, LoginPath, creds, nil, &result); err != nil {
		return result, err
	}
	if result.Token == "" {
		return result, errors.New("login response carried no token")
	}
	if saver, ok := c.tokens.(TokenSaver); ok {
		if err := saver.Save(result.Token); err != nil {
			return result, fmt.Errorf("save token: %w", err)
		}
	}
	return result, nil
}

// Logout forgets the stored token. The backend keeps no session to end.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// CurrentUser returns the account behind the bearer token.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.execute(ctx, http.MethodGet, "/user", nil, nil, &user)
	return user, err
}
