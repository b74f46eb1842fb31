// Package scraper implements the Zap Imóveis glue-api listings client.
package scraper

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

const (
	defaultBaseURL = "https://glue-api.zapimoveis.com.br/v2/listings"

	// The portal blocks default Go user agents; a mainstream browser UA
	// is required for the glue API to answer.
	firefoxUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0"

	itemsPerPage    = 110
	defaultMaxPages = 500
)

// Options configures the scraper client.
type Options struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	PageDelay         time.Duration
	MaxPages          int
}

// Client fetches listing search results with rate limiting and retry.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	opts    Options
	fields  string
}

// NewClient creates a scraper client with the given options. Zero
// values fall back to defaults matching the portal's tolerances.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = firefoxUA
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 0.5
	}
	if opts.PageDelay == 0 {
		opts.PageDelay = 2 * time.Second
	}
	if opts.MaxPages == 0 {
		opts.MaxPages = defaultMaxPages
	}
	return &Client{
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		opts:    opts,
		fields:  RenderFields(SearchQuery(DefaultListingFields(), DefaultAccountFields())),
	}
}

// retriableStatus reports whether a response status warrants a retry.
// The glue API intermittently returns 424 on valid queries.
func retriableStatus(code int) bool {
	return code == http.StatusFailedDependency || code >= 500
}

// Page is one decoded result page. Exhausted is set when the API stops
// returning a search block, which is how the portal signals the end of
// a result set.
type Page struct {
	Listings  []listing.Listing
	Total     int
	Exhausted bool
}

// FetchPage fetches and decodes one result page for a neighborhood.
func (c *Client) FetchPage(ctx context.Context, n Neighborhood, page int) (*Page, error) {
	body, err := c.get(ctx, c.buildURL(n, page))
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, eris.Wrap(err, "scraper: decode response")
	}
	if resp.Search == nil {
		return &Page{Exhausted: true}, nil
	}

	listings := make([]listing.Listing, 0, len(resp.Search.Result.Listings))
	for _, entry := range resp.Search.Result.Listings {
		listings = append(listings, entry.Listing.toModel(n.DisplayName()))
	}
	return &Page{Listings: listings, Total: resp.Search.TotalCount}, nil
}

// FetchAll pages through a neighborhood's results until the search is
// exhausted or the page cap is reached, deduplicating by listing ID.
func (c *Client) FetchAll(ctx context.Context, n Neighborhood) ([]listing.Listing, error) {
	log := zap.L().With(
		zap.String("component", "scraper"),
		zap.String("neighborhood", n.Name),
	)

	seen := make(map[string]struct{})
	var all []listing.Listing

	for page := 1; page <= c.opts.MaxPages; page++ {
		result, err := c.FetchPage(ctx, n, page)
		if err != nil {
			return nil, eris.Wrapf(err, "scraper: fetch %s page %d", n.Name, page)
		}
		if result.Exhausted {
			log.Info("search exhausted", zap.Int("page", page), zap.Int("listings", len(all)))
			return all, nil
		}

		for _, l := range result.Listings {
			if _, dup := seen[l.ID]; dup {
				log.Warn("duplicate listing id", zap.String("id", l.ID), zap.Int("page", page))
				continue
			}
			seen[l.ID] = struct{}{}
			all = append(all, l)
		}

		if err := c.pageDelay(ctx); err != nil {
			return all, err
		}
	}

	log.Info("page cap reached", zap.Int("listings", len(all)))
	return all, nil
}

func (c *Client) pageDelay(ctx context.Context) error {
	t := time.NewTimer(c.opts.PageDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "scraper: cancelled between pages")
	case <-t.C:
		return nil
	}
}

// get performs a rate-limited GET with retry on transport errors and
// retriable statuses. A fresh device ID is minted per attempt.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "scraper: rate limiter wait")
		}

		deviceID := uuid.New().String()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"&user="+deviceID, nil)
		if err != nil {
			return nil, eris.Wrap(err, "scraper: build request")
		}
		c.setHeaders(req, deviceID)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			zap.L().Warn("scraper: request failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if retriableStatus(resp.StatusCode) {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("scraper: http %d", resp.StatusCode)
			zap.L().Warn("scraper: retriable status, backing off",
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("scraper: unexpected status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, eris.Wrap(err, "scraper: read body")
		}
		return body, nil
	}
	return nil, eris.Wrap(lastErr, "scraper: all retries exhausted")
}

func (c *Client) setHeaders(req *http.Request, deviceID string) {
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,pt-BR;q=0.8,pt;q=0.5,en;q=0.3")
	req.Header.Set("X-Domain", ".zapimoveis.com.br")
	req.Header.Set("X-DeviceId", deviceID)
}

func (c *Client) backoff(ctx context.Context, attempt int) {
	base := time.Second
	maxBackoff := 10 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int63n(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// buildURL assembles the search URL minus the per-attempt user param.
func (c *Client) buildURL(n Neighborhood, page int) string {
	params := url.Values{
		"portal":           {"ZAP"},
		"categoryPage":     {"RESULT"},
		"business":         {"SALE"},
		"listingType":      {"USED"},
		"size":             {strconv.Itoa(itemsPerPage)},
		"topoFixoSize":     {"0"},
		"superPremiumSize": {"0"},
		"developmentsSize": {"4"},
		"from":             {strconv.Itoa((page - 1) * itemsPerPage)},
		"page":             {strconv.Itoa(page)},
		"viewport":         {"null"},
		"images":           {"webp"},
		"__zt":             {"mtc:deduplication2023"},
		"includeFields":    {c.fields},
	}
	for k, vs := range n.searchParams() {
		params[k] = vs
	}
	return c.opts.BaseURL + "?" + params.Encode()
}
