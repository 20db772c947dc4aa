package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

func newLoginCmd(a *app) *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.Email == "" || creds.Password == "" {
				if err := promptCredentials(cmd, &creds); err != nil {
					return err
				}
			}

			result, err := a.client.Login(cmd.Context(), creds)
			if err != nil {
				a.notifier.Error("Login failed", errorMessage(err, "Invalid credentials"))
				return err
			}

			a.notifier.Success("Signed in", fmt.Sprintf("Welcome back, %s", result.User.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "token stored in %s\n", a.tokens.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	return cmd
}

func promptCredentials(cmd *cobra.Command, creds *models.Credentials) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	ask := func(label string, dst *string) error {
		if *dst != "" {
			return nil
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		*dst = strings.TrimSpace(line)
		return nil
	}
	if err := ask("Email", &creds.Email); err != nil {
		return err
	}
	if err := ask("Password", &creds.Password); err != nil {
		return err
	}
	if creds.Email == "" || creds.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			a.notifier.Success("Signed out", "Session token removed")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s> %s\n", user.Name, user.Email, console.RoleBadge(user).Render(a.color))
			token, err := a.tokens.Token()
			if err == nil {
				if exp, ok := tokenExpiry(token); ok {
					fmt.Fprintf(out, "session expires %s\n", exp.Local().Format(time.RFC1123))
				}
			}
			return nil
		},
	}
}

// tokenExpiry reads the exp claim without verifying the signature. Opaque
// tokens report false.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
