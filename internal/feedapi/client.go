// Package feedapi is the HTTP client for the paged posts API.
package feedapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caldwell/strand/internal/domain"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultPageSize = 20
)

// Client implements domain.FeedRepository against the posts endpoint.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed API client. pageSize <= 0 falls back to the
// default.
func NewClient(baseURL string, pageSize int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// FetchPage retrieves one page of posts. Any non-success status is an
// error; the caller's pagination state stays untouched so the next
// qualifying scroll tick retries naturally.
func (c *Client) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(c.pageSize))
	reqURL := fmt.Sprintf("%s/api/posts?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("feed request", "url", reqURL, "page", page)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("feed request failed", "error", err)
		return domain.Page{}, domain.ErrFeedUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Page{}, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var dto postsResponse
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Page{}, fmt.Errorf("failed to parse posts response: %w", err)
	}

	return mapPage(page, dto), nil
}
