package keep

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/keepclone/keep.go/pkg/session"
)

// Client provides strongly-typed access to the notes REST API.
//
// Client manages HTTP communication, authentication and serialization for
// every endpoint. The bearer token is read from the attached session store on
// each request, so a token obtained through [Client.Login] (or placed in the
// store out of band) is picked up automatically. A missing token never fails
// a call locally; the server answers 401 and the call surfaces
// [ErrUnauthenticated].
//
// Client instances are safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession attaches a session store. Without this option the client keeps
// its session in process memory only.
func WithSession(s *session.Store) Option {
	return func(c *Client) { c.session = s }
}

// WithLogger enables request logging at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API at baseURL. The URL should include the
// protocol and host (e.g. "http://localhost:8080") without a trailing slash.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = session.New(session.NewMemoryStorage())
	}
	return c
}

// Session returns the session store backing this client.
func (c *Client) Session() *session.Store { return c.session }

// doRequest performs an HTTP request with JSON body handling and the bearer
// token from the session store, when one is held.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, validationError("failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, validationError("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, err := c.session.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	return resp, nil
}

// errorBody is the JSON shape the server uses for every failure response.
type errorBody struct {
	Error string `json:"error"`
}

// decode consumes resp, mapping non-2xx statuses to typed errors and
// unmarshaling success bodies into target when target is non-nil.
func decode(resp *http.Response, target any, providerExchange bool) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		raw, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(raw, &eb); err != nil || eb.Error == "" {
			eb.Error = string(bytes.TrimSpace(raw))
		}
		return statusError(resp.StatusCode, eb.Error, providerExchange)
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "failed to decode response", cause: err}
		}
	}
	return nil
}

// Health checks the health endpoint. It requires no authentication.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return result, nil
}
