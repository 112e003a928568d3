package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/choppi/admin-web/pkg/config"
	pkgerrors "github.com/choppi/admin-web/pkg/errors"
)

// Client is the single outgoing HTTP client for the backend REST API. It
// resolves the base URL once from configuration, attaches the bearer token
// carried by the request context, and maps every failure to a tagged error at
// this boundary so call sites only branch on error codes.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport, used by tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// NewClient builds the backend client from configuration.
func NewClient(cfg config.BackendConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type tokenKey struct{}

// WithToken stores the access token that outgoing requests in this context
// should authenticate with.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the access token carried by the context, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build backend request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "backend unreachable").
			WithDetails(map[string]any{"method": method, "path": path})
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp, method, path)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode backend response").
			WithDetails(map[string]any{"method": method, "path": path})
	}
	return nil
}

// apiErrorBody tolerates the backend's varying error shapes: message may be a
// string or an array of strings.
type apiErrorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func (b apiErrorBody) text() string {
	if len(b.Message) > 0 {
		var single string
		if err := json.Unmarshal(b.Message, &single); err == nil {
			return single
		}
		var many []string
		if err := json.Unmarshal(b.Message, &many); err == nil {
			return strings.Join(many, ", ")
		}
	}
	return b.Error
}

func errorFromResponse(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body apiErrorBody
	message := ""
	if json.Unmarshal(raw, &body) == nil {
		message = body.text()
	}
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	details := map[string]any{"method": method, "path": path, "status": resp.StatusCode}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, message)
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(details)
	default:
		return pkgerrors.New(pkgerrors.CodeUpstream, message).WithDetails(details)
	}
}
