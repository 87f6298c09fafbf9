// Package solr is the client for the archive's Solr-style metadata query
// endpoint: ANDed filter queries, relevance sorting, and both offset and
// cursorMark pagination.
package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
)

// DefaultPageSize matches the fixed page cap the backend enforces
// regardless of the requested row count.
const DefaultPageSize = 100

// CursorStart is the initial cursorMark token.
const CursorStart = "*"

// Relevance sort specs. Cursor paging needs the stable id tiebreaker so no
// record is skipped or repeated across pages.
const (
	SortRelevance       = "score desc"
	SortRelevanceStable = "score desc, id asc"
)

// requestedFields asks for both modern and legacy short field names so
// decoding survives either schema generation.
var requestedFields = []string{
	"id",
	"title", "author", "type", "ti", "au", "dt",
	"documentdateiso", "dd",
	"bates", "pages", "bn", "pg",
	"availability", "attach", "access", "artifact", "collection", "brand",
	"score",
}

// Config holds backend connection settings.
type Config struct {
	BaseURL  string
	PageSize int
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Client queries the metadata endpoint.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	logger   *zap.Logger
}

// NewClient creates a backend client.
func NewClient(cfg Config) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		pageSize: pageSize,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// PageSize returns the fixed per-request page size.
func (c *Client) PageSize() int { return c.pageSize }

// FetchPage retrieves one result page. A non-empty cursor selects cursorMark
// paging; otherwise start is used as a numeric offset. Returns the decoded
// documents and the next cursor token (empty under offset paging; equal to
// the request cursor at true end of results).
//
// Backend and network failures wrap domain.ErrRetrieval so callers can
// abort just the current strategy.
func (c *Client) FetchPage(
	ctx context.Context, terms string, filters []string, sort string, start int, cursor string,
) ([]domain.Document, string, error) {
	params := url.Values{}
	params.Set("q", terms)
	params.Set("wt", "json")
	params.Set("rows", strconv.Itoa(c.pageSize))
	params.Set("sort", sort)
	params.Set("fl", strings.Join(requestedFields, ","))
	for _, fq := range filters {
		params.Add("fq", fq)
	}
	if cursor != "" {
		params.Set("cursorMark", cursor)
	} else {
		params.Set("start", strconv.Itoa(start))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("query backend: %v: %w", err, domain.ErrRetrieval)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("backend status %d: %w", resp.StatusCode, domain.ErrRetrieval)
	}

	var payload struct {
		Response struct {
			Docs []hit `json:"docs"`
		} `json:"response"`
		NextCursorMark string `json:"nextCursorMark"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("decode backend response: %v: %w", err, domain.ErrRetrieval)
	}

	docs := make([]domain.Document, 0, len(payload.Response.Docs))
	for _, h := range payload.Response.Docs {
		if h.ID == "" {
			continue
		}
		docs = append(docs, domain.NewDocument(h.ID, h.Title, h.Type, h.Date, h.Bates))
	}
	return docs, payload.NextCursorMark, nil
}

// FilterExpr renders one backend filter expression, quoting values that
// contain whitespace ("type" + "Brand Plan" -> `type:"Brand Plan"`).
func FilterExpr(field, value string) string {
	if strings.ContainsAny(value, " \t") && !strings.HasPrefix(value, "[") {
		return field + ":" + strconv.Quote(value)
	}
	return field + ":" + value
}
