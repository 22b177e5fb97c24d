// Package apiclient talks to the links backend over HTTP/JSON.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wadjakorntonsri/linkshelf/pkg/core/domain"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
	"golang.org/x/oauth2"
)

var _ ports.LinkAPI = (*Client)(nil)

const (
	authFailedText    = "Auth failed"
	testFailedText    = "Test failed"
	badResponseText   = "Unexpected response from server"
	maxErrorBodyBytes = 64 << 10
	defaultAPITimeout = 15 * time.Second
)

// Client issues one request per call and never retries.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// New returns a client for baseURL. A nil httpClient means http.DefaultClient.
// timeout bounds each call; zero means 15s.
func New(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultAPITimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		timeout: timeout,
	}
}

type messageBody struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

func (c *Client) TestConnection(ctx context.Context) (string, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/test", "", nil)
	if err != nil {
		return "", err
	}

	var body messageBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", &domain.APIError{Kind: domain.ErrTransport, Status: status, Message: testFailedText, Cause: err}
	}
	if !isSuccess(status) {
		msg := body.Message
		if msg == "" {
			msg = testFailedText
		}
		return "", &domain.APIError{Kind: domain.ErrBackend, Status: status, Message: msg}
	}
	return body.Message, nil
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	status, raw, err := c.do(ctx, http.MethodPost, "/login", "", creds)
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", responseError(status, raw, authFailedText)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", &domain.APIError{Kind: domain.ErrTransport, Status: status, Message: badResponseText, Cause: err}
	}
	if body.AccessToken == "" {
		return "", &domain.APIError{Kind: domain.ErrTransport, Status: status, Message: badResponseText}
	}
	return body.AccessToken, nil
}

func (c *Client) Register(ctx context.Context, creds domain.Credentials) error {
	status, raw, err := c.do(ctx, http.MethodPost, "/register", "", creds)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return responseError(status, raw, authFailedText)
	}
	return nil
}

func (c *Client) ListLinks(ctx context.Context, token string) ([]domain.Link, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/api/links", token, nil)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, responseError(status, raw, domain.StatusMessage(status))
	}

	links := []domain.Link{}
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, &domain.APIError{Kind: domain.ErrTransport, Status: status, Message: badResponseText, Cause: err}
	}
	return links, nil
}

func (c *Client) AddLink(ctx context.Context, token string, draft domain.LinkDraft) error {
	status, raw, err := c.do(ctx, http.MethodPost, "/api/links", token, draft)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return responseError(status, raw, domain.StatusMessage(status))
	}
	return nil
}

// do sends one request and returns the status and raw body. Only failures to
// get a response at all are returned as errors.
func (c *Client) do(ctx context.Context, method, path, token string, payload interface{}) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, &domain.APIError{Kind: domain.ErrTransport, Message: "Invalid API address", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.clientFor(ctx, token).Do(req)
	if err != nil {
		return 0, nil, &domain.APIError{Kind: domain.ErrTransport, Message: "Failed to fetch: " + err.Error(), Cause: err}
	}
	defer resp.Body.Close()

	// Success bodies are read whole; an error body only has to carry msg.
	var reader io.Reader = resp.Body
	if !isSuccess(resp.StatusCode) {
		reader = io.LimitReader(resp.Body, maxErrorBodyBytes)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return resp.StatusCode, nil, &domain.APIError{Kind: domain.ErrTransport, Status: resp.StatusCode, Message: "Failed to read response", Cause: err}
	}
	return resp.StatusCode, raw, nil
}

// clientFor attaches "Authorization: Bearer <token>" only when a token is given.
func (c *Client) clientFor(ctx context.Context, token string) *http.Client {
	if token == "" {
		return c.http
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// responseError turns a non-2xx response into an APIError. An unparsable body
// is not an error of its own; it only changes the kind and message.
func responseError(status int, raw []byte, fallback string) error {
	var body messageBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return &domain.APIError{Kind: domain.ErrTransport, Status: status, Message: fallback, Cause: err}
	}

	msg := body.Msg
	if msg == "" {
		msg = fallback
	}
	return &domain.APIError{Kind: statusKind(status), Status: status, Message: msg}
}

func statusKind(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrAuth
	case status >= 400 && status < 500:
		return domain.ErrValidation
	default:
		return domain.ErrBackend
	}
}
