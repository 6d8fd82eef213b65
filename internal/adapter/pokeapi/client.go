// Package pokeapi is the HTTP client for the PokeNihongo REST backend.
package pokeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pokenihongo/admin-console/internal/config"
	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/pkg/ctxutil"
)

const (
	defaultTimeout = 10 * time.Second
	retryDelay     = 500 * time.Millisecond
	maxBodyBytes   = 4 << 20
)

// ListResult is one page of raw list items. Items stay undecoded so one
// cache can hold pages of every screen.
type ListResult struct {
	Items      []json.RawMessage
	Pagination domain.Pagination
}

// StatusError is a non-2xx response. Unwrap yields the matching domain
// sentinel when there is one.
type StatusError struct {
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pokeapi: status %d", e.Status)
	}
	return fmt.Sprintf("pokeapi: status %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error { return e.kind }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// Client talks to the backend. The bearer token comes from the request
// context when present, else from configuration.
type Client struct {
	baseURL    string
	token      string
	locale     string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.APIConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		locale:     cfg.Locale,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: retryDelay,
		log:        logger.With("adapter", "pokeapi"),
	}
}

// List fetches one page from path. locale selects the translation the
// backend returns for translatable fields; empty means the default.
func (c *Client) List(ctx context.Context, path string, query url.Values, locale string) (ListResult, error) {
	reqURL := c.url(path)
	if enc := query.Encode(); enc != "" {
		reqURL += "?" + enc
	}

	env, err := c.do(ctx, http.MethodGet, reqURL, nil, locale)
	if err != nil {
		return ListResult{}, err
	}

	var data listData
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return ListResult{}, fmt.Errorf("pokeapi: decode list %s: %w", path, err)
		}
	}

	c.log.DebugContext(ctx, "pokeapi list",
		slog.String("path", path),
		slog.Int("items", len(data.Results)),
	)

	return ListResult{Items: data.Results, Pagination: data.Pagination.toDomain()}, nil
}

// Create posts payload to path and returns the created record.
func (c *Client) Create(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	env, err := c.send(ctx, http.MethodPost, c.url(path), payload)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Update replaces record id under path.
func (c *Client) Update(ctx context.Context, path, id string, payload any) (json.RawMessage, error) {
	env, err := c.send(ctx, http.MethodPut, c.url(path, id), payload)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Delete removes record id under path.
func (c *Client) Delete(ctx context.Context, path, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.url(path, id), nil, "")
	return err
}

// Ping reports whether the backend answers at all. Any response below 500
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("pokeapi: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pokeapi: ping: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return &StatusError{Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) url(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, seg := range segments {
		for _, part := range strings.Split(strings.Trim(seg, "/"), "/") {
			b.WriteByte('/')
			b.WriteString(url.PathEscape(part))
		}
	}
	return b.String()
}

func (c *Client) send(ctx context.Context, method, reqURL string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: encode payload: %w", err)
	}
	return c.do(ctx, method, reqURL, body, "")
}

func (c *Client) do(ctx context.Context, method, reqURL string, body []byte, locale string) (*envelope, error) {
	req, err := c.newRequest(ctx, method, reqURL, body, locale)
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	if method == http.MethodGet {
		resp, err = c.doWithRetry(ctx, req)
	} else {
		resp, err = c.httpClient.Do(req)
	}
	if err != nil {
		c.log.ErrorContext(ctx, "pokeapi request failed",
			slog.String("method", method),
			slog.String("url", reqURL),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("pokeapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("pokeapi: read body: %w", err)
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("pokeapi: decode json: %w", err)
		}
	}

	status := resp.StatusCode
	if status < 300 && env.StatusCode >= 400 {
		status = env.StatusCode
	}
	if status >= 300 {
		return nil, statusError(status, &env)
	}
	return &env, nil
}

func (c *Client) newRequest(ctx context.Context, method, reqURL string, body []byte, locale string) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, rdr)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		// Allows the retry path and redirects to replay the body.
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}
	req.Header.Set("Accept", "application/json")

	if locale == "" {
		locale = ctxutil.LocaleFromCtx(ctx)
	}
	if locale == "" {
		locale = c.locale
	}
	if locale != "" {
		req.Header.Set("Accept-Language", locale)
	}

	token := ctxutil.BearerTokenFromCtx(ctx)
	if token == "" {
		token = c.token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "pokeapi retry", slog.String("url", req.URL.String()), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-time.After(c.retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return c.httpClient.Do(req)
}

func statusError(status int, env *envelope) error {
	msg := env.Message.String()
	if msg == "" {
		msg = env.Error
	}

	se := &StatusError{Status: status, Message: msg}
	switch status {
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return fmt.Errorf("%w: %w", se, validationError(env.Message))
	case http.StatusUnauthorized:
		se.kind = domain.ErrUnauthorized
	case http.StatusForbidden:
		se.kind = domain.ErrForbidden
	case http.StatusNotFound:
		se.kind = domain.ErrNotFound
	case http.StatusConflict:
		se.kind = domain.ErrConflict
	}
	return se
}
