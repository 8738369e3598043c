package apiclient

import (
	"net/url"

	"tdo/internal/models"
)

// TokenResponse is the response from the login and register endpoints.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with username and password. The endpoint takes a
// form-encoded body, not JSON.
func (c *Client) Login(username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp TokenResponse
	if err := c.postForm("/auth/login", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the new user. Callers log in
// separately to obtain a token.
func (c *Client) Register(req *RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.doNoAuth("POST", "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the account behind the current credential.
func (c *Client) Me() (*models.User, error) {
	var user models.User
	if err := c.do("GET", "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
