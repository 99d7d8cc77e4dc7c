// Package upstream is the single HTTP path to the remote leave API. It
// attaches the session's bearer token to every request, translates responses
// into the domain error taxonomy, and invalidates the session on 401.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"leavepanel/internal/domain"
)

// TokenSource yields the bearer token for the current session, or "" when the
// request should go out unauthenticated.
type TokenSource func() string

type Client struct {
	baseURL string
	origin  string
	http    *http.Client
	token   TokenSource

	// onUnauthorized runs once per 401 before the error is returned, so the
	// session is already cleared by the time callers see the failure.
	onUnauthorized func()
}

func NewClient(baseURL string, token TokenSource, onUnauthorized func()) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	origin := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		origin = u.Scheme + "://" + u.Host
	}

	return &Client{
		baseURL:        baseURL,
		origin:         origin,
		http:           &http.Client{Timeout: 30 * time.Second},
		token:          token,
		onUnauthorized: onUnauthorized,
	}
}

// WithToken returns a copy of the client pinned to a fixed token. Used during
// login, before the token has been persisted into a session.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = func() string { return token }
	return &cp
}

// Bind pins the client to one request's session token and 401 handler.
func (c *Client) Bind(token string, onUnauthorized func()) *Client {
	cp := *c
	cp.token = func() string { return token }
	cp.onUnauthorized = onUnauthorized
	return &cp
}

// FileURL turns a server-relative file path (export results, attachments)
// into an absolute URL on the API origin.
func (c *Client) FileURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.origin + path
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", out)
}

func (c *Client) putJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, bytes.NewReader(body), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// No response received at all.
		return domain.ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.responseError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func (c *Client) responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return domain.UnauthorizedError{Err: fmt.Errorf("%s %s", resp.Request.Method, resp.Request.URL.Path)}

	case resp.StatusCode == http.StatusUnprocessableEntity:
		var payload struct {
			Errors  map[string][]string `json:"errors"`
			Message string              `json:"message"`
		}
		_ = json.Unmarshal(raw, &payload)
		return domain.ValidationError{Fields: payload.Errors, Err: fmt.Errorf("%s", payload.Message)}

	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFoundError{Resource: strings.Trim(resp.Request.URL.Path, "/")}

	case resp.StatusCode >= 500:
		return domain.ServerError{Status: resp.StatusCode}

	default:
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(raw, &payload)
		msg := payload.Message
		if msg == "" {
			msg = payload.Error
		}
		return domain.RequestError{Status: resp.StatusCode, Msg: msg}
	}
}
