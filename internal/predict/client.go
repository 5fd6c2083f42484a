// Package predict is the HTTP JSON client for the blend property
// prediction service.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

// Compile-time interface check.
var _ domain.PredictionClient = (*Client)(nil)

// FallbackMessage is shown when the service gives no usable error text.
const FallbackMessage = "Prediction failed."

// RemoteError is a failed request to the prediction service.
type RemoteError struct {
	Status  int    // HTTP status, 0 for transport failures
	Message string // server-supplied text, or FallbackMessage
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("predict: %s", e.Message)
	}
	return fmt.Sprintf("predict: %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// UserMessage returns the text to show for a failed request: the
// server's message when there is one, otherwise the fallback. Other
// errors are returned as-is.
func UserMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// Client talks to the prediction backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a client rooted at baseURL (e.g.
// "http://127.0.0.1:5001/api").
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Components fetches the selectable component catalog.
func (c *Client) Components(ctx context.Context) (*domain.Catalog, error) {
	body, err := c.do(ctx, http.MethodGet, "/get_components", nil)
	if err != nil {
		return nil, err
	}
	var resp catalogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("predict: unmarshal catalog: %w", err)
	}
	catalog := resp.toDomain()
	c.log.Debug("predict: catalog with %d gasoline / %d diesel additives",
		len(catalog.Additives(domain.Gasoline)), len(catalog.Additives(domain.Diesel)))
	return catalog, nil
}

// Predict submits a recipe and returns the predicted blend.
func (c *Client) Predict(ctx context.Context, fuel domain.FuelType, recipe domain.Recipe) (*domain.BlendResult, error) {
	payload, err := json.Marshal(predictRequest{FuelType: fuel.String(), Recipe: recipe})
	if err != nil {
		return nil, fmt.Errorf("predict: marshal payload: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/predict", payload)
	if err != nil {
		return nil, err
	}
	result, err := decodeResult(body, fuel, recipe)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if result.ID == "" {
		result.ID = "blend_" + uuid.NewString()
	}
	c.log.Debug("predict: %s -> %s (%d properties)", recipe.Summary(), result.ID, len(result.Properties))
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	url := c.baseURL + path
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("predict: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("predict: %s %s (%d bytes)", method, url, len(payload))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RemoteError{Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Status: resp.StatusCode, Message: FallbackMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := FallbackMessage
		var e errorResponse
		if json.Unmarshal(respBody, &e) == nil && strings.TrimSpace(e.Error) != "" {
			msg = e.Error
		}
		c.log.Warn("predict: %s %s: %s: %s", method, path, resp.Status, truncate(string(respBody), 120))
		return nil, &RemoteError{Status: resp.StatusCode, Message: msg}
	}
	return respBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
