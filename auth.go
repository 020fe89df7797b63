package keep

import (
	"context"
	"net/http"
	"strings"

	"github.com/keepclone/keep.go/pkg/models"
)

// LoginRequest carries credential login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries account creation input.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// googleLoginRequest carries the provider-issued token for the OAuth exchange.
type googleLoginRequest struct {
	Token string `json:"token"`
}

// AuthResponse is the session produced by a successful login, registration
// or OAuth exchange.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// storeSession persists the freshly issued credential so subsequent calls
// pick it up automatically.
func (c *Client) storeSession(auth *AuthResponse) error {
	if err := c.session.SetToken(auth.Token); err != nil {
		return err
	}
	return c.session.SetUser(auth.User)
}

// Login exchanges email and password for a session. Invalid credentials
// surface as [ErrUnauthenticated].
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var result AuthResponse
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	if err := c.storeSession(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and returns its first session. Server-side
// rejections (duplicate email, weak password) surface as [ErrValidation].
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" || strings.TrimSpace(name) == "" {
		return nil, validationError("email, password and name are required")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, err
	}

	var result AuthResponse
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	if err := c.storeSession(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoginWithGoogle exchanges a Google-issued ID token for a session. A refused
// exchange surfaces as [ErrProviderRejected].
func (c *Client) LoginWithGoogle(ctx context.Context, token string) (*AuthResponse, error) {
	if token == "" {
		return nil, validationError("provider token is required")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/google", googleLoginRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var result AuthResponse
	if err := decode(resp, &result, true); err != nil {
		return nil, err
	}
	if err := c.storeSession(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentUser fetches the user record bound to the held token. Without a
// token it fails locally with [ErrUnauthenticated], issuing no request.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	if !c.session.Authenticated() {
		return nil, &Error{Kind: KindUnauthenticated, Message: "no token held"}
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var result models.User
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout clears the held token and user. It is idempotent and purely local:
// the server invalidates nothing for bearer sessions.
func (c *Client) Logout() error {
	return c.session.Clear()
}
