// Package upstream is the REST client for the document backend.
//
// Every call takes the caller's bearer credential explicitly; the client
// holds no ambient session state.
package upstream

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

	"docshare/internal/domain"
	"docshare/internal/httputil"
)

// maxErrorBody bounds how much of an error response is read
const maxErrorBody = 64 << 10

// Client calls the document backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	// streamClient carries file bodies; only the wait for response headers is bounded
	streamClient *http.Client
	logger       *slog.Logger
}

// NewClient creates a client for the backend rooted at baseURL (e.g. http://localhost:5000/api)
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		streamClient: &http.Client{
			Transport: transport,
		},
		logger: logger,
	}
}

// newRequest builds a backend request carrying the caller's credential and request id
func (c *Client) newRequest(ctx context.Context, token, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := httputil.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	return req, nil
}

// send executes req. Error statuses are consumed and returned as
// *domain.RemoteError; on success the caller owns resp.Body.
func (c *Client) send(client *http.Client, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.Is(err, context.Canceled) || errors.As(err, &tooLarge) {
			return nil, err
		}
		c.logger.Warn("backend unreachable",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return nil, &domain.RemoteError{Kind: domain.RemoteTransport, Message: "document service is unavailable"}
	}

	c.logger.Debug("backend call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

// do sends one JSON request and decodes the JSON response into out (if non-nil).
// Failures are returned as *domain.RemoteError. Nothing is retried.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, token, method, path, query, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(c.httpClient, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeBody(resp, out)
}

func decodeBody(resp *http.Response, out interface{}) error {
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &domain.RemoteError{Kind: domain.RemoteServer, Status: resp.StatusCode, Message: "invalid response from document service"}
	}
	return nil
}

// decodeError extracts the backend's message so it can be shown verbatim
func decodeError(resp *http.Response) error {
	kind := domain.ClassifyStatus(resp.StatusCode)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := ""
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Msg     string `json:"msg"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		switch {
		case payload.Message != "":
			message = payload.Message
		case payload.Error != "":
			message = payload.Error
		case payload.Msg != "":
			message = payload.Msg
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "<") {
		message = text
	}

	// server failures get a generic message; backend internals are not echoed
	if kind == domain.RemoteServer || message == "" {
		message = http.StatusText(resp.StatusCode)
		if kind == domain.RemoteServer {
			message = "document service failed"
		}
	}

	return &domain.RemoteError{Kind: kind, Status: resp.StatusCode, Message: message}
}

func escape(id string) string {
	return url.PathEscape(id)
}
