// Package scryfall refreshes the local card catalog from the Scryfall bulk
// data API. The core treats the result as an opaque snapshot; only the
// fields needed for display and aggregation are kept.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/decklabs/mtgo-decklab/internal/cards"
)

const (
	defaultBaseURL = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond
	requestTimeout = 30 * time.Second
	bulkTimeout    = 5 * time.Minute
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second

	// oracleCardsType selects the one-entry-per-oracle-card bulk file.
	oracleCardsType = "oracle_cards"
)

// Config configures the catalog client.
type Config struct {
	// BaseURL is the API base URL.
	BaseURL string

	// HTTPClient allows a custom HTTP client. The default has no client
	// timeout; bulk downloads are bounded by the request context instead.
	HTTPClient *http.Client
}

// Client is a Scryfall API client with rate limiting and retry.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	userAgent   string
	backoff     time.Duration
}

// NewClient creates a new catalog client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "decklab/1.0",
		backoff:     initialBackoff,
	}
}

// GetBulkData retrieves the bulk data directory.
func (c *Client) GetBulkData(ctx context.Context) (*BulkDataList, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var list BulkDataList
	if err := c.doRequest(ctx, c.baseURL+"/bulk-data", &list); err != nil {
		return nil, fmt.Errorf("failed to get bulk data: %w", err)
	}
	return &list, nil
}

// RefreshCatalog downloads the oracle-cards bulk file and returns catalog
// entries for every card that is legal or banned in the given format. Keys
// are canonical per cards.Normalize, so they line up with ingested decks.
func (c *Client) RefreshCatalog(ctx context.Context, format string) ([]cards.Card, error) {
	list, err := c.GetBulkData(ctx)
	if err != nil {
		return nil, err
	}

	var downloadURI string
	for _, bd := range list.Data {
		if bd.Type == oracleCardsType {
			downloadURI = bd.DownloadURI
			break
		}
	}
	if downloadURI == "" {
		return nil, fmt.Errorf("bulk data directory has no %s entry", oracleCardsType)
	}

	log.Printf("[Scryfall] downloading oracle cards from %s", downloadURI)
	return c.downloadCards(ctx, downloadURI, strings.ToLower(format))
}

// downloadCards streams the bulk card array, filtering by format legality.
// The file is large; cards are decoded one at a time.
func (c *Client) downloadCards(ctx context.Context, uri, format string) ([]cards.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, bulkTimeout)
	defer cancel()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bulk download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bulk download failed: status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to read bulk file: %w", err)
	}

	var out []cards.Card
	for dec.More() {
		var bc bulkCard
		if err := dec.Decode(&bc); err != nil {
			return nil, fmt.Errorf("failed to decode bulk card: %w", err)
		}
		if card, ok := toCatalogCard(bc, format); ok {
			out = append(out, card)
		}
	}

	log.Printf("[Scryfall] %d cards kept for format %s", len(out), format)
	return out, nil
}

// toCatalogCard filters and converts one bulk card. Banned cards are kept:
// historical decklists predate bans.
func toCatalogCard(bc bulkCard, format string) (cards.Card, bool) {
	switch bc.Legalities[format] {
	case "legal", "banned":
	default:
		return cards.Card{}, false
	}

	card := cards.Card{
		Key:         cards.Normalize(bc.Name),
		Name:        bc.Name,
		ManaCost:    bc.ManaCost,
		CMC:         int(math.Round(bc.CMC)),
		TypeLine:    bc.TypeLine,
		ScryfallURI: bc.ScryfallURI,
	}
	if card.Key == "" {
		return cards.Card{}, false
	}

	// Multi-faced cards carry cost and type on their faces.
	if len(bc.CardFaces) > 0 {
		if card.ManaCost == "" {
			card.ManaCost = bc.CardFaces[0].ManaCost
		}
		if card.TypeLine == "" {
			card.TypeLine = bc.CardFaces[0].TypeLine
		}
	}
	return card, true
}

// doRequest performs one rate-limited GET with retry and exponential
// backoff, decoding the JSON response into result.
func (c *Client) doRequest(ctx context.Context, url string, result interface{}) error {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		func() {
			defer func() { _ = resp.Body.Close() }()
			switch resp.StatusCode {
			case http.StatusOK:
				if decErr := json.NewDecoder(resp.Body).Decode(result); decErr != nil {
					lastErr = fmt.Errorf("failed to parse response: %w", decErr)
				} else {
					lastErr = nil
				}
			case http.StatusTooManyRequests:
				lastErr = fmt.Errorf("rate limited (HTTP 429)")
			default:
				lastErr = fmt.Errorf("unexpected status: %d", resp.StatusCode)
			}
		}()

		if lastErr == nil {
			return nil
		}
		// Decode failures and client errors are not retried.
		if resp.StatusCode == http.StatusOK || (resp.StatusCode >= 400 && resp.StatusCode < 500 &&
			resp.StatusCode != http.StatusTooManyRequests) {
			return lastErr
		}
		if attempt < maxRetries {
			time.Sleep(backoff)
			backoff = min(backoff*2, maxBackoff)
		}
	}

	return lastErr
}
