// Package api is the client for the operations REST API.
package api

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

	"github.com/google/uuid"
	"github.com/maypok86/otter"
	"golang.org/x/oauth2"

	"github.com/Veraticus/bednights/internal/auth"
	"github.com/Veraticus/bednights/internal/common"
	"github.com/Veraticus/bednights/internal/model"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps the response text printed by APIError.Error.
const maxErrorBody = 4096

// Config holds client settings.
type Config struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	CacheTTL      time.Duration
	CacheSize     int
}

// Client talks to the operations API on behalf of one session.
type Client struct {
	cache      otter.Cache[model.Entity, []model.Record]
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	session    auth.Session
	retry      common.RetryOptions
	cached     bool
}

// New creates a client. Requests carry the session token as a bearer token.
func New(cfg Config, session auth.Session) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q: %w", cfg.BaseURL, common.ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if session.Authenticated() {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: session.Token, TokenType: "Bearer"}),
			Base:   http.DefaultTransport,
		}
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		userAgent:  cfg.UserAgent,
		session:    session,
		retry: common.RetryOptions{
			MaxAttempts:  max(cfg.RetryAttempts, 1),
			InitialDelay: cfg.RetryDelay,
		},
	}

	if cfg.CacheTTL > 0 {
		size := cfg.CacheSize
		if size <= 0 {
			size = 64
		}
		cache, err := otter.MustBuilder[model.Entity, []model.Record](size).
			WithTTL(cfg.CacheTTL).
			Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build response cache: %w", err)
		}
		c.cache = cache
		c.cached = true
	}
	return c, nil
}

// Session returns the session the client acts for.
func (c *Client) Session() auth.Session {
	return c.session
}

// Invalidate drops cached list responses so the next List refetches.
func (c *Client) Invalidate() {
	if c.cached {
		c.cache.Clear()
	}
}

// Close releases the response cache.
func (c *Client) Close() {
	if c.cached {
		c.cache.Close()
	}
}

// List fetches every record of an entity. A payload that is not an array is
// treated as an empty collection.
func (c *Client) List(ctx context.Context, entity model.Entity) ([]model.Record, error) {
	if c.cached {
		if records, ok := c.cache.Get(entity); ok {
			slog.Debug("Serving cached list", "entity", entity, "count", len(records))
			return records, nil
		}
	}

	var records []model.Record
	err := common.WithRetry(ctx, func() error {
		body, err := c.do(ctx, http.MethodGet, entity.Path(), nil)
		if err != nil {
			return err
		}
		records, err = decodeList(body, entity)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		return nil
	}, c.retry)
	if err != nil {
		return nil, err
	}

	if c.cached {
		c.cache.Set(entity, records)
	}
	return records, nil
}

func decodeList(body []byte, entity model.Entity) ([]model.Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []model.Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("failed to decode %s list: %w", entity, err)
		}
		out := records[:0]
		for _, r := range records {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	}

	var failure struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(trimmed, &failure) == nil && failure.Error != "" {
		return nil, &APIError{Method: http.MethodGet, Path: entity.Path(), Message: failure.Error}
	}

	slog.Warn("List payload is not an array, treating as empty", "entity", entity, "bytes", len(body))
	return []model.Record{}, nil
}

// Upsert creates or updates records with a PATCH.
func (c *Client) Upsert(ctx context.Context, entity model.Entity, records []model.Record) (model.MutationResult, error) {
	if err := c.mutable(entity); err != nil {
		return model.MutationResult{}, err
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return model.MutationResult{}, fmt.Errorf("failed to encode %s records: %w", entity, err)
	}

	body, err := c.do(ctx, http.MethodPatch, entity.Path(), payload)
	if err != nil {
		return model.MutationResult{}, err
	}

	var result model.MutationResult
	if err := json.Unmarshal(body, &result); err != nil {
		return model.MutationResult{}, fmt.Errorf("failed to decode upsert response: %w", err)
	}
	if result.Failed() {
		return result, &APIError{Method: http.MethodPatch, Path: entity.Path(), Message: result.Error}
	}

	c.Invalidate()
	slog.Info("Upserted records",
		"entity", entity,
		"inserted", result.InsertedCount,
		"updated", result.UpdatedCount)
	return result, nil
}

// Delete removes one record. Dependent records surface as a *ConflictError.
func (c *Client) Delete(ctx context.Context, entity model.Entity, id string) (model.MutationResult, error) {
	if err := c.mutable(entity); err != nil {
		return model.MutationResult{}, err
	}
	if strings.TrimSpace(id) == "" {
		return model.MutationResult{}, fmt.Errorf("delete %s: id is required: %w", entity, common.ErrValidation)
	}

	path := entity.Path() + "/" + url.PathEscape(id)
	body, err := c.do(ctx, http.MethodDelete, path, nil)

	var apiErr *APIError
	if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict) {
		return model.MutationResult{}, err
	}
	if apiErr != nil {
		body = apiErr.Body
	}

	var resp struct {
		model.MutationResult
		AffectedLogs []string `json:"affected_logs"`
	}
	if jerr := json.Unmarshal(body, &resp); jerr != nil {
		if apiErr != nil {
			return model.MutationResult{}, &ConflictError{Entity: entity, ID: id}
		}
		return model.MutationResult{}, fmt.Errorf("failed to decode delete response: %w", jerr)
	}

	if apiErr != nil || len(resp.AffectedLogs) > 0 {
		return resp.MutationResult, &ConflictError{
			Entity: entity,
			ID:     id,
			Conflict: model.DeleteConflict{
				Error:        resp.Error,
				AffectedLogs: resp.AffectedLogs,
			},
		}
	}
	if resp.Failed() {
		return resp.MutationResult, &APIError{Method: http.MethodDelete, Path: path, Message: resp.Error}
	}

	c.Invalidate()
	slog.Info("Deleted record", "entity", entity, "id", id)
	return resp.MutationResult, nil
}

func (c *Client) mutable(entity model.Entity) error {
	if !entity.Mutable() {
		return fmt.Errorf("%s is read-only: %w", entity, common.ErrForbidden)
	}
	return c.session.RequireAdmin()
}

// do sends one request and returns the response body. Non-2xx responses become
// *APIError, wrapped as retryable for 429 and 5xx.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	u := c.baseURL.JoinPath(path)

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("%s %s: %w: %w", method, path, common.ErrAPIFailure, err),
			Retryable: true,
		}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Debug("Failed to close response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("API request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
			Body:    body,
		}
		return nil, &common.RetryableError{Err: apiErr, Retryable: retryableStatus(resp.StatusCode)}
	}
	return body, nil
}
