package cms

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

	"go.uber.org/zap"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

const defaultTimeout = 10 * time.Second

// Client provides read-only access to the CMS GraphQL endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

// NewClient constructs a Client for the given GraphQL endpoint. An empty
// endpoint is a supported configuration state: every lookup then reports
// ErrNotFound and the site degrades to its not-found paths.
func NewClient(endpoint string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: defaultTimeout},
		log:      log,
	}
}

// Endpoint returns the configured GraphQL endpoint, empty when unset.
func (c *Client) Endpoint() string {
	if c == nil {
		return ""
	}
	return c.endpoint
}

// SetHTTPClient overrides the underlying HTTP client (primarily for tests
// and for the tighter per-batch timeout used at build time).
func (c *Client) SetHTTPClient(h *http.Client) {
	if c != nil && h != nil {
		c.http = h
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// query posts a GraphQL document and decodes the data object into out.
func (c *Client) query(ctx context.Context, document string, vars map[string]any, out any) error {
	if c == nil || c.endpoint == "" {
		return ErrNotFound
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}

	payload, err := json.Marshal(graphqlRequest{Query: document, Variables: vars})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("cms: graphql status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	var body struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if len(body.Errors) > 0 {
		return fmt.Errorf("cms: graphql error: %s", body.Errors[0].Message)
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		return ErrNotFound
	}
	return json.Unmarshal(body.Data, out)
}

// fetchFirstPage runs a pages(contentType: ...) query and decodes the first
// non-empty element into out. Singleton index pages all share this shape.
func (c *Client) fetchFirstPage(ctx context.Context, document string, out Page) error {
	var data struct {
		Pages []json.RawMessage `json:"pages"`
	}
	if err := c.query(ctx, document, nil, &data); err != nil {
		return err
	}
	for _, raw := range data.Pages {
		if len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
			continue
		}
		return json.Unmarshal(raw, out)
	}
	return ErrNotFound
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
