package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hostelhub/hostelctl/internal/config"
	"github.com/hostelhub/hostelctl/internal/logger"
	"github.com/hostelhub/hostelctl/internal/record"
	"github.com/hostelhub/hostelctl/internal/resource"
)

const (
	headerRequestID = "X-Request-ID"
	maxErrorBody    = 4096
)

type Option func(*Client)

// WithToken authenticates every request with the given session token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client talks JSON to the hostel REST API.
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *logger.Logger

	mu    sync.RWMutex
	token string
}

func New(cfg config.APIConfig, logger *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cookieName: cfg.SessionCookie,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		logger:     logger.Component("client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// List fetches the whole collection of a kind.
func (c *Client) List(ctx context.Context, kind resource.Kind) ([]record.Record, error) {
	body, err := c.do(ctx, http.MethodGet, kind.Endpoint, nil)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return []record.Record{}, nil
	}

	return record.Decode(body)
}

func (c *Client) Get(ctx context.Context, kind resource.Kind, id string) (record.Record, error) {
	body, err := c.do(ctx, http.MethodGet, kind.Path(id), nil)
	if err != nil {
		return nil, err
	}

	return decodeRecord(body)
}

// Create posts a new item. When the backend answers without a body the
// submitted payload is returned as the created record.
func (c *Client) Create(ctx context.Context, kind resource.Kind, payload any) (record.Record, error) {
	if err := c.validatePayload(payload); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, kind.Endpoint, payload)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return record.FromValue(payload)
	}

	return decodeRecord(body)
}

// Update puts a payload onto an item. The returned record is nil when the
// backend answers without a body.
func (c *Client) Update(ctx context.Context, kind resource.Kind, id string, payload any) (record.Record, error) {
	if err := c.validatePayload(payload); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, kind.Path(id), payload)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil //nolint:nilnil // an empty answer is a valid update
	}

	return decodeRecord(body)
}

// UpdateStatus moves an item to status through the kind's status target.
// The status must be one of the kind's known statuses.
func (c *Client) UpdateStatus(ctx context.Context, kind resource.Kind, id, status string) (record.Record, error) {
	if !kind.HasStatusValue(status) {
		return nil, fmt.Errorf("invalid status %q for %s (expected one of: %s)",
			status, kind.Name, strings.Join(kind.Statuses, ", "))
	}

	form := resource.StatusForm{Status: strings.ToLower(strings.TrimSpace(status))}
	if err := c.validatePayload(form); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, kind.StatusTarget(id), form)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil //nolint:nilnil // an empty answer is a valid update
	}

	return decodeRecord(body)
}

func (c *Client) Delete(ctx context.Context, kind resource.Kind, id string) error {
	_, err := c.do(ctx, http.MethodDelete, kind.Path(id), nil)
	return err
}

// FetchAll lists several kinds concurrently. The first failure cancels the
// remaining requests.
func (c *Client) FetchAll(ctx context.Context, kinds ...resource.Kind) (map[string][]record.Record, error) {
	var mu sync.Mutex
	result := make(map[string][]record.Record, len(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		g.Go(func() error {
			records, err := c.List(ctx, kind)
			if err != nil {
				return fmt.Errorf("%s: %w", kind.Name, err)
			}

			mu.Lock()
			result[kind.Name] = records
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) validatePayload(payload any) error {
	switch payload.(type) {
	case nil:
		return errors.New("empty payload")
	case record.Record, map[string]any:
		return nil
	}

	if err := c.validate.Struct(payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return readBody(resp)
}

func (c *Client) send(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		if c.cookieName != "" {
			req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed",
			"method", method,
			"path", path,
			"request_id", requestID,
			"error", err.Error(),
		)
		return nil, err
	}

	c.logger.Debug("Request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	return resp, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}

	return apiErr
}

func decodeRecord(body []byte) (record.Record, error) {
	var r record.Record
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return r, nil
}
