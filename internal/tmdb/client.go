// Package tmdb is a small client for The Movie Database v3 API covering the
// TV endpoints tvshelf browses.
package tmdb

import (
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

	"github.com/avast/retry-go/v4"
	"github.com/mmcdole/tvshelf/internal/domain"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"

	defaultTimeout  = 15 * time.Second
	defaultAttempts = 3
	defaultDelay    = 300 * time.Millisecond
	userAgent       = "tvshelf/1.0"
)

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API root (used by tests)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLanguage sets the language requested for localized fields
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetry sets how many attempts a retryable request gets and the
// initial backoff delay between them
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.delay = delay
	}
}

// Client implements domain.MetadataClient against TMDB
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	logger     *slog.Logger
}

var _ domain.MetadataClient = (*Client)(nil)

// NewClient creates a TMDB client. apiKey may be a v3 key or a v4 read
// access token.
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     strings.TrimSpace(apiKey),
		language:   DefaultLanguage,
		httpClient: &http.Client{Timeout: defaultTimeout},
		attempts:   defaultAttempts,
		delay:      defaultDelay,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusError carries a non-2xx response that is worth retrying
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("unexpected status code %d: %s", e.code, e.message)
	}
	return fmt.Sprintf("unexpected status code %d", e.code)
}

// doRequest performs an authenticated GET and decodes the JSON body into v.
// 429, 5xx and transport failures are retried with exponential backoff.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, v any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("language", c.language)

	bearer := strings.Contains(c.apiKey, ".")
	if !bearer {
		query.Set("api_key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")
			req.Header.Set("User-Agent", userAgent)
			if bearer {
				req.Header.Set("Authorization", "Bearer "+c.apiKey)
			}

			c.logger.Debug("tmdb request", "path", path)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				if ctx.Err() != nil {
					return nil, retry.Unrecoverable(ctx.Err())
				}
				return nil, err
			}
			defer resp.Body.Close()

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to read response: %w", err)
			}

			switch {
			case resp.StatusCode == http.StatusOK:
				return data, nil
			case resp.StatusCode == http.StatusUnauthorized:
				return nil, retry.Unrecoverable(domain.ErrAuthFailed)
			case resp.StatusCode == http.StatusNotFound:
				return nil, retry.Unrecoverable(fmt.Errorf("%s: %w", path, domain.ErrShowNotFound))
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				return nil, &statusError{code: resp.StatusCode, message: errorMessage(data)}
			default:
				c.logger.Error("tmdb request error", "status", resp.StatusCode, "body", string(data))
				return nil, retry.Unrecoverable(&statusError{code: resp.StatusCode, message: errorMessage(data)})
			}
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("tmdb request failed, retrying", "path", path, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return c.classify(path, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// classify maps a final request error onto the domain sentinels
func (c *Client) classify(path string, err error) error {
	var se *statusError
	switch {
	case errors.Is(err, domain.ErrAuthFailed), errors.Is(err, domain.ErrShowNotFound):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &se) && se.code != http.StatusTooManyRequests && se.code < 500:
		return err
	default:
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
}

func errorMessage(body []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.StatusMessage
}

// GetShow returns a show with its season list
func (c *Client) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	var details ShowDetails
	if err := c.doRequest(ctx, fmt.Sprintf("/tv/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return MapShow(details), nil
}

// SearchShows returns the first page of shows matching query
func (c *Client) SearchShows(ctx context.Context, query string) ([]*domain.Show, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", "false")

	var page PagedShows
	if err := c.doRequest(ctx, "/search/tv", q, &page); err != nil {
		return nil, err
	}
	return MapShows(page.Results), nil
}

// TrendingShows returns today's trending shows
func (c *Client) TrendingShows(ctx context.Context) ([]*domain.Show, error) {
	var page PagedShows
	if err := c.doRequest(ctx, "/trending/tv/day", nil, &page); err != nil {
		return nil, err
	}
	return MapShows(page.Results), nil
}

// GetSeason returns a season with its episodes
func (c *Client) GetSeason(ctx context.Context, showID, seasonNumber int) (*domain.Season, error) {
	var details SeasonDetails
	path := fmt.Sprintf("/tv/%d/season/%d", showID, seasonNumber)
	if err := c.doRequest(ctx, path, nil, &details); err != nil {
		return nil, err
	}
	return MapSeason(showID, details), nil
}

// GetEpisode returns a single episode
func (c *Client) GetEpisode(ctx context.Context, showID, seasonNumber, episodeNumber int) (*domain.Episode, error) {
	var details EpisodeDetails
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", showID, seasonNumber, episodeNumber)
	if err := c.doRequest(ctx, path, nil, &details); err != nil {
		return nil, err
	}
	ep := MapEpisode(showID, details)
	return &ep, nil
}
