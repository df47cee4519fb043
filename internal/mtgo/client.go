// Package mtgo fetches and parses published MTGO decklist pages.
//
// Two page shapes are handled: a month listing page enumerating event links,
// and an event detail page carrying one text block per decklist. Fetching is
// strictly sequential with a bounded timeout per request.
package mtgo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

var (
	// ErrUnavailable marks a transient fetch failure (timeout, transport
	// error, server error). Eligible for retry.
	ErrUnavailable = errors.New("source unavailable")

	// ErrGone marks a page that responded but is permanently absent: the
	// server redirected back to an index or answered 404/410. Not retried.
	ErrGone = errors.New("page gone")
)

// Config configures the source client.
type Config struct {
	// BaseURL is the source site base URL.
	BaseURL string

	// RequestTimeout is the per-request timeout. A request past this
	// deadline is reported as ErrUnavailable.
	RequestTimeout time.Duration

	// RateLimit is the minimum interval between requests.
	RateLimit rate.Limit

	// HTTPClient allows a custom HTTP client.
	HTTPClient *http.Client
}

// DefaultConfig returns default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://www.mtgo.com",
		RequestTimeout: 20 * time.Second,
		RateLimit:      rate.Every(1500 * time.Millisecond),
	}
}

// Client fetches listing and event pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	userAgent  string
}

// NewClient creates a new source client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.RequestTimeout,
		}
	}

	limit := config.RateLimit
	if limit == 0 {
		limit = DefaultConfig().RateLimit
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
		userAgent:  "decklab/1.0",
	}
}

// ListEvents fetches the listing page for a month and returns the event
// identifiers for the given format, oldest first. Failures to reach or read
// the page are reported as ErrUnavailable.
func (c *Client) ListEvents(ctx context.Context, month time.Time, format string) ([]string, error) {
	listURL := fmt.Sprintf("%s/decklists/%s?filter=%s",
		c.baseURL, month.Format("2006/01"), url.QueryEscape(titleCase(format)))

	doc, _, err := c.get(ctx, listURL)
	if err != nil {
		return nil, err
	}

	formatKey := strings.ToLower(format)
	seen := make(map[string]struct{})
	var ids []string
	doc.Find(`a[href*="/decklist/"]`).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		id := lastPathSegment(href)
		if id == "" || !strings.Contains(id, formatKey) {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	})

	// Listing pages run newest first; reverse to preserve chronology.
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, nil
}

// FetchEvent fetches one event detail page and returns the raw text block of
// each decklist found on it. A reachable page with zero decklists returns an
// empty slice and no error; the caller decides that the page is dead.
func (c *Client) FetchEvent(ctx context.Context, eventID string) ([]string, error) {
	eventURL := fmt.Sprintf("%s/decklist/%s", c.baseURL, url.PathEscape(eventID))

	doc, finalURL, err := c.get(ctx, eventURL)
	if err != nil {
		return nil, err
	}

	// A request for a removed event is answered with a redirect back to the
	// decklists index.
	if !strings.Contains(finalURL.Path, eventID) {
		return nil, fmt.Errorf("%w: %s redirected to %s", ErrGone, eventID, finalURL.Path)
	}

	var blocks []string
	doc.Find(".decklist").Each(func(_ int, s *goquery.Selection) {
		if block := textLines(s); block != "" {
			blocks = append(blocks, block)
		}
	})
	return blocks, nil
}

// get performs one rate-limited GET and parses the body. It returns the
// final URL after redirects so callers can detect index bounces.
func (c *Client) get(ctx context.Context, rawURL string) (*goquery.Document, *url.URL, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to parse
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, nil, fmt.Errorf("%w: status %d for %s", ErrGone, resp.StatusCode, rawURL)
	default:
		return nil, nil, fmt.Errorf("%w: status %d for %s", ErrUnavailable, resp.StatusCode, rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return doc, resp.Request.URL, nil
}

// textLines flattens a decklist element into newline-separated visible text.
// Each leaf element contributes one line, matching the row-per-element
// markup of the supported page shape.
func textLines(s *goquery.Selection) string {
	var lines []string
	s.Find("*").Each(func(_ int, el *goquery.Selection) {
		if el.Children().Length() != 0 {
			return
		}
		if t := strings.TrimSpace(el.Text()); t != "" {
			lines = append(lines, t)
		}
	})
	if len(lines) == 0 {
		if t := strings.TrimSpace(s.Text()); t != "" {
			lines = strings.Split(t, "\n")
		}
	}
	return strings.Join(lines, "\n")
}

func lastPathSegment(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	path := strings.TrimRight(u.Path, "/")
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
