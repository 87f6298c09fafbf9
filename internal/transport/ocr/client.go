// Package ocr fetches document body text from the archive's OCR file host.
// Files live under a path derived from the document id: the first four id
// characters become nested directories ("abcd1234" -> "a/b/c/d/abcd1234/
// abcd1234.ocr").
package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/archivelabs/docsift/internal/domain"
)

// Config holds OCR host settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client retrieves OCR body text by document id.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates an OCR client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchBody retrieves the OCR text for a document. A non-200 status is a
// miss and yields empty text without error; transport failures wrap
// domain.ErrBodyFetch but are never fatal to the run.
func (c *Client) FetchBody(ctx context.Context, docID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.docURL(docID), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch ocr %s: %v: %w", docID, err, domain.ErrBodyFetch)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("ocr miss", zap.String("doc_id", docID), zap.Int("status", resp.StatusCode))
		return "", nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ocr %s: %v: %w", docID, err, domain.ErrBodyFetch)
	}
	return string(data), nil
}

// docURL builds the nested OCR file path for a document id.
func (c *Client) docURL(docID string) string {
	id := strings.ToLower(docID)
	prefix := id
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	segments := make([]string, 0, len(prefix))
	for _, r := range prefix {
		segments = append(segments, string(r))
	}
	return c.baseURL + strings.Join(segments, "/") + "/" + id + "/" + id + ".ocr"
}
