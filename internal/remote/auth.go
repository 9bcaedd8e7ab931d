package remote

import (
	"context"
	"net/http"

	"github.com/Munazil1/centswise/internal/domain"
)

type LoginResult struct {
	AccessToken string
	User        domain.User
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	in := map[string]string{"username": username, "password": password}
	var out struct {
		AccessToken string     `json:"access_token"`
		User        userRecord `json:"user"`
	}
	if err := c.do(ctx, "Login", http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{AccessToken: out.AccessToken, User: out.User.toDomain()}, nil
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var out struct {
		User userRecord `json:"user"`
	}
	if err := c.do(ctx, "CurrentUser", http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return domain.User{}, err
	}
	return out.User.toDomain(), nil
}

// ChangePassword returns the confirmation message sent by the service.
func (c *Client) ChangePassword(ctx context.Context, current, next string) (string, error) {
	in := map[string]string{"current_password": current, "new_password": next}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, "ChangePassword", http.MethodPost, "/auth/change-password", nil, in, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
