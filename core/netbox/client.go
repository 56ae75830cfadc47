package netbox

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxErrorBody caps how much of an error answer is kept in APIError.Body.
const maxErrorBody = 4096

// Client talks to the NetBox REST API. It implements Capability.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

var _ Capability = (*Client)(nil)

// NewClient creates a client for cfg.URL. The token may be empty and set later with
// SetToken once a temporary token has been provisioned.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("netbox url is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		//nolint:gosec // opt-in for lab instances with self-signed certificates
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Transport: transport, Timeout: timeoutDuration},
		logger:  logger,
	}, nil
}

// SetToken replaces the API token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Lookup returns the only object of the collection matching filter, nil if none does.
func (c *Client) Lookup(ctx context.Context, path string, filter Filter) (*Record, error) {
	query := filter.Encode()
	if query != "" {
		query += "&"
	}
	query += "limit=2"

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, collectionPath(path)+"?"+query, nil, &resp); err != nil {
		return nil, err
	}

	switch {
	case resp.Count == 0 || len(resp.Results) == 0:
		return nil, nil
	case resp.Count > 1:
		return nil, fmt.Errorf("%w: %s?%s (%d objects)", ErrMultipleResults, path, filter.Encode(), resp.Count)
	}

	rec := resp.Results[0]
	return &rec, nil
}

// Create posts attrs to the collection.
func (c *Client) Create(ctx context.Context, path string, attrs map[string]any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, collectionPath(path), attrs, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update patches the object id of the collection with attrs.
func (c *Client) Update(ctx context.Context, path string, id int, attrs map[string]any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("%s%d/", collectionPath(path), id), attrs, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Status checks that the API answers and the credentials are accepted.
func (c *Client) Status(ctx context.Context) error {
	var status map[string]any
	return c.do(ctx, http.MethodGet, "/api/status/", nil, &status)
}

// do performs one request. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, path, err)
	}
	defer c.closeResponse(resp)

	c.logger.Debug("netbox request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

// closeResponse closes the HTTP response body, logging any errors.
func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn("Failed to close response body", zap.Error(err))
	}
}

// collectionPath turns "dcim/devices" into "/api/dcim/devices/".
func collectionPath(path string) string {
	return "/api/" + strings.Trim(path, "/") + "/"
}
