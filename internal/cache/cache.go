package cache

import (
	"context"
	"time"
)

// Entry is the singleton cached feed: the last successfully generated
// output in both renditions plus its generation time.
type Entry struct {
	XML          string    `json:"xml"`
	CSV          string    `json:"csv"`
	ProductCount int       `json:"product_count"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// FeedCache stores the last generated feed. Get reports whether the entry
// is still fresh; a stale entry is returned anyway so callers can prefer
// serving it over surfacing an upstream failure. A nil entry means nothing
// has been generated yet.
type FeedCache interface {
	Get(ctx context.Context) (entry *Entry, fresh bool, err error)
	Set(ctx context.Context, entry Entry) error
}
