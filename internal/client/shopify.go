package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/config"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	// maxConsecutiveFailures is the shared retry budget per page; rate-limit
	// and transient failures count against the same counter.
	maxConsecutiveFailures = 3

	baseBackoff = time.Second
	maxBackoff  = 10 * time.Second
)

// ErrUpstream is returned when the catalog could not be retrieved at all:
// the retry budget is exhausted with zero accumulated pages.
var ErrUpstream = errors.New("upstream catalog unavailable")

// RateLimitedError is an HTTP 429 from the Storefront API, carrying the
// Retry-After duration when the server supplied one.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("storefront rate limited (retry after %s)", e.RetryAfter)
}

type StorefrontClient interface {
	FetchAllProducts(ctx context.Context) ([]domain.RemoteProduct, error)
}

type storefrontClient struct {
	rl         ratelimit.Limiter
	config     config.ShopifyConfig
	endpoint   string
	httpClient *resty.Client
	sleep      func(time.Duration)
}

func NewStorefrontClient(cfg config.ShopifyConfig) StorefrontClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-Shopify-Storefront-Access-Token", cfg.StorefrontAccessToken)

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &storefrontClient{
		// 5 req/s gives ~200ms spacing between page requests, enough to stay
		// clear of the Storefront leaky bucket. No trailing delay after the
		// last page.
		rl:         ratelimit.New(rps),
		config:     cfg,
		endpoint:   fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.StoreDomain, cfg.APIVersion),
		httpClient: client,
		sleep:      time.Sleep,
	}
}

// FetchAllProducts pages through the entire catalog and accumulates it in
// memory. Pagination is strictly sequential: each cursor comes from the
// previous response. On retry exhaustion a partially accumulated catalog is
// returned rather than an error; with nothing accumulated, ErrUpstream.
func (c *storefrontClient) FetchAllProducts(ctx context.Context) ([]domain.RemoteProduct, error) {
	var (
		products          []domain.RemoteProduct
		cursor            *string
		consecutiveErrors int
	)

	for {
		c.rl.Take()

		page, err := c.fetchPage(ctx, cursor)
		if err != nil {
			consecutiveErrors++
			if consecutiveErrors >= maxConsecutiveFailures {
				if len(products) > 0 {
					log.Warnf("Returning partial catalog of %d products after %d consecutive fetch failures: %v",
						len(products), consecutiveErrors, err)
					return products, nil
				}
				return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
			}

			var rle *RateLimitedError
			if errors.As(err, &rle) && rle.RetryAfter > 0 {
				log.Warnf("Storefront rate limited, honoring Retry-After of %s", rle.RetryAfter)
				c.sleep(rle.RetryAfter)
			} else {
				delay := backoffDelay(consecutiveErrors)
				log.Warnf("Page fetch failed (attempt %d/%d), backing off %s: %v",
					consecutiveErrors, maxConsecutiveFailures, delay, err)
				c.sleep(delay)
			}
			continue
		}

		consecutiveErrors = 0
		products = append(products, page.products...)
		log.Debugf("Fetched page with %d products (total %d)", len(page.products), len(products))

		if !page.hasNextPage {
			return products, nil
		}
		cursor = &page.endCursor
	}
}

type productPage struct {
	products    []domain.RemoteProduct
	hasNextPage bool
	endCursor   string
}

func (c *storefrontClient) fetchPage(ctx context.Context, cursor *string) (*productPage, error) {
	vars := map[string]any{"cursor": nil}
	if cursor != nil && *cursor != "" {
		vars["cursor"] = *cursor
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: productsQuery, Variables: vars}).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("storefront request failed: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, &RateLimitedError{RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After"))}
	}
	if resp.IsError() {
		return nil, fmt.Errorf("storefront HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	var out productsResponse
	if err := json.Unmarshal([]byte(resp.String()), &out); err != nil {
		return nil, fmt.Errorf("storefront response parse error: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("storefront graphql errors: %+v", out.Errors)
	}

	page := &productPage{
		hasNextPage: out.Data.Products.PageInfo.HasNextPage,
		endCursor:   out.Data.Products.PageInfo.EndCursor,
	}
	for _, e := range out.Data.Products.Edges {
		page.products = append(page.products, e.Node.toDomain())
	}

	return page, nil
}

// backoffDelay is min(1s * 2^n, 10s) for the n-th consecutive failure.
func backoffDelay(consecutiveErrors int) time.Duration {
	delay := baseBackoff << uint(consecutiveErrors)
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms.
// Returns 0 when the header is missing or invalid.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
