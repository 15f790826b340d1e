package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

func newTestClient(endpoint string) (*storefrontClient, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	c := &storefrontClient{
		rl:         ratelimit.NewUnlimited(),
		endpoint:   endpoint,
		httpClient: resty.New().SetHeader("Content-Type", "application/json"),
		sleep: func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		},
	}
	return c, sleeps
}

func pageBody(productIDs []string, hasNextPage bool, endCursor string) []byte {
	edges := make([]map[string]any, 0, len(productIDs))
	for _, id := range productIDs {
		edges = append(edges, map[string]any{
			"node": map[string]any{
				"id":     "gid://shopify/Product/" + id,
				"title":  "Product " + id,
				"handle": "product-" + id,
				"vendor": "Teddy's",
				"variants": map[string]any{
					"edges": []map[string]any{
						{"node": map[string]any{
							"id":               "gid://shopify/ProductVariant/" + id + "0",
							"price":            map[string]any{"amount": "9.99", "currencyCode": "EUR"},
							"availableForSale": true,
							"weight":           500.0,
							"weightUnit":       "GRAMS",
						}},
					},
				},
			},
		})
	}

	body, _ := json.Marshal(map[string]any{
		"data": map[string]any{
			"products": map[string]any{
				"pageInfo": map[string]any{
					"hasNextPage": hasNextPage,
					"endCursor":   endCursor,
				},
				"edges": edges,
			},
		},
	})
	return body
}

func requestCursor(t *testing.T, r *http.Request) any {
	t.Helper()
	var req struct {
		Variables map[string]any `json:"variables"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req.Variables["cursor"]
}

func TestFetchAllProductsPaginates(t *testing.T) {
	pages := [][]string{{"1", "2"}, {"3", "4"}, {"5"}}
	var gotCursors []any

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCursors = append(gotCursors, requestCursor(t, r))
		page := pages[calls]
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write(pageBody(page, calls < len(pages), fmt.Sprintf("cursor-%d", calls)))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(srv.URL)
	products, err := c.FetchAllProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 5)
	for i, want := range []string{"1", "2", "3", "4", "5"} {
		assert.Equal(t, "gid://shopify/Product/"+want, products[i].ID)
	}

	// First request has no cursor, later ones carry the prior endCursor.
	require.Len(t, gotCursors, 3)
	assert.Nil(t, gotCursors[0])
	assert.Equal(t, "cursor-1", gotCursors[1])
	assert.Equal(t, "cursor-2", gotCursors[2])

	assert.Empty(t, *sleeps, "no backoff sleeps on a clean run")
}

func TestFetchAllProductsRetryBound(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, sleeps := newTestClient(srv.URL)
	products, err := c.FetchAllProducts(context.Background())

	require.ErrorIs(t, err, ErrUpstream)
	assert.Nil(t, products)
	assert.Equal(t, 3, calls, "exactly three consecutive attempts before giving up")

	// Exponential backoff between attempts: 2s then 4s.
	require.Len(t, *sleeps, 2)
	assert.Equal(t, 2*time.Second, (*sleeps)[0])
	assert.Equal(t, 4*time.Second, (*sleeps)[1])
}

func TestFetchAllProductsReturnsPartialCatalog(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.Write(pageBody([]string{"1", "2"}, true, "cursor-1"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	products, err := c.FetchAllProducts(context.Background())

	require.NoError(t, err, "a partial catalog is preferable to no feed")
	require.Len(t, products, 2)
	assert.Equal(t, 4, calls, "one successful page plus three failed attempts")
}

func TestFetchAllProductsHonorsRetryAfter(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(pageBody([]string{"1"}, false, ""))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(srv.URL)
	products, err := c.FetchAllProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Len(t, *sleeps, 1)
	assert.GreaterOrEqual(t, (*sleeps)[0], 2*time.Second, "Retry-After duration is honored exactly")
}

func TestFetchAllProductsGraphQLErrorsAreRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			w.Write([]byte(`{"errors":[{"message":"throttled"}]}`))
			return
		}
		w.Write(pageBody([]string{"1"}, false, ""))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	products, err := c.FetchAllProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 2, calls)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 2*time.Second, parseRetryAfter("2"))
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))
}

func TestBackoffDelayCapped(t *testing.T) {
	assert.Equal(t, 2*time.Second, backoffDelay(1))
	assert.Equal(t, 4*time.Second, backoffDelay(2))
	assert.Equal(t, 10*time.Second, backoffDelay(5))
}
