// Package apiclient is the typed client for the documentation backend.
// Each method is one POST; errors are returned once, never retried.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	models "docstudio/internal/domain/models/docgen"
)

// Client calls the documentation backend routes
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends "Authorization: Bearer <token>" on every call
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithClock overrides the clock used for request ids
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a client for the backend at baseURL
func New(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Page selects a page of prompt history. Page is one-based.
type Page struct {
	Page     int
	PageSize int
}

// HistoryPage is one page of prompt history plus the total row count
type HistoryPage struct {
	Entries []models.PromptDocument
	Total   int
}

// DocumentContent is a fetched document. Name is empty when the backend omits it.
type DocumentContent struct {
	DocData string
	Name    string
}

// UpdateInput saves a document. An empty DocID creates a new document.
type UpdateInput struct {
	DocID   string
	DocData string
	Name    string
}

// GenerateResult is the stored outcome of a generation
type GenerateResult struct {
	DocData string
	DocID   string
}

// ListRules returns the published rule catalog
func (c *Client) ListRules(ctx context.Context) ([]models.RuleBase, error) {
	var resp models.RuleBaseResponse
	if err := c.post(ctx, models.RouteRuleBase, &models.RuleBaseRequest{Envelope: c.envelope()}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GenerateDocument asks the backend to write documentation for a sample exchange
func (c *Client) GenerateDocument(ctx context.Context, input models.GenerationInput, cfg models.AgentConfig) (*GenerateResult, error) {
	var resp models.GenerateDocsResponse
	req := &models.GenerateDocsRequest{Envelope: c.envelope(), Data: input, Config: cfg}
	if err := c.post(ctx, models.RouteGenerateDocs, req, &resp); err != nil {
		return nil, err
	}
	return &GenerateResult{DocData: resp.DocData, DocID: resp.DocID}, nil
}

// FetchPromptHistory returns one page of prompt history.
// The wire offset is the zero-based page index.
func (c *Client) FetchPromptHistory(ctx context.Context, page Page) (*HistoryPage, error) {
	var resp models.PromptHistoryResponse
	req := &models.PromptHistoryRequest{
		Envelope: c.envelope(),
		Offset:   page.Page - 1,
		Limit:    page.PageSize,
	}
	if err := c.post(ctx, models.RoutePromptHistory, req, &resp); err != nil {
		return nil, err
	}
	return &HistoryPage{Entries: resp.HistoryList, Total: resp.Total}, nil
}

// FetchDocument returns a document's markdown and, when known, its name
func (c *Client) FetchDocument(ctx context.Context, docID string) (*DocumentContent, error) {
	var resp models.GetDocResponse
	if err := c.post(ctx, models.RouteGetDocs, &models.GetDocRequest{Envelope: c.envelope(), DocID: docID}, &resp); err != nil {
		return nil, err
	}
	return &DocumentContent{DocData: resp.DocData, Name: resp.Name}, nil
}

// UpdateDocument saves a document revision
func (c *Client) UpdateDocument(ctx context.Context, in UpdateInput) error {
	req := &models.UpdateDocRequest{
		Envelope: c.envelope(),
		DocID:    in.DocID,
		DocData:  in.DocData,
		Name:     in.Name,
	}
	return c.post(ctx, models.RouteUpdateDocs, req, nil)
}

// FetchDocumentGraph returns the revision tree containing docID
func (c *Client) FetchDocumentGraph(ctx context.Context, docID string) (*models.DocNode, error) {
	var resp models.GraphDocResponse
	if err := c.post(ctx, models.RouteGraphDoc, &models.GraphDocRequest{Envelope: c.envelope(), DocID: docID}, &resp); err != nil {
		return nil, err
	}
	return &resp.Node, nil
}

func (c *Client) envelope() models.Envelope {
	return models.Envelope{RequestID: models.NewRequestID(c.now())}
}

// post sends body as JSON and decodes a 2xx response into out (when non-nil)
func (c *Client) post(ctx context.Context, route string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", route, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", route, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "route", route, "error", err)
		return fmt.Errorf("POST %s: %w", route, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"route", route,
		"status", resp.StatusCode,
		"duration_ms", c.now().Sub(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(route, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", route, err)
	}
	return nil
}
