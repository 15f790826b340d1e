package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/client"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/feed"

	log "github.com/sirupsen/logrus"
)

// ErrEmptyCatalog flags a fetch that succeeded but returned zero products.
// A real catalog is never empty, so this is surfaced as a fatal anomaly
// instead of silently publishing an empty feed.
var ErrEmptyCatalog = errors.New("catalog fetch returned zero products")

// Result is one complete pipeline output.
type Result struct {
	XML          string
	CSV          string
	Items        []domain.FeedItem
	ProductCount int
	GeneratedAt  time.Time
}

// Service runs the feed pipeline: fetch the full catalog, classify each
// product, expand variants into feed items and serialize the lot. Each run
// reprocesses the entire catalog; nothing is incremental.
type Service struct {
	client     client.StorefrontClient
	classifier *feed.Classifier
	projector  *feed.Projector
}

func NewService(client client.StorefrontClient, classifier *feed.Classifier, projector *feed.Projector) *Service {
	return &Service{
		client:     client,
		classifier: classifier,
		projector:  projector,
	}
}

func (s *Service) Generate(ctx context.Context) (*Result, error) {
	products, err := s.client.FetchAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	items := make([]domain.FeedItem, 0, len(products))
	for _, p := range products {
		category, subcategory := s.classifier.Classify(p.Collections)
		items = append(items, s.projector.Project(p, category, subcategory)...)
	}

	csv, err := feed.SerializeCSV(items)
	if err != nil {
		return nil, fmt.Errorf("serialize csv: %w", err)
	}

	result := &Result{
		XML:          feed.SerializeXML(items),
		CSV:          csv,
		Items:        items,
		ProductCount: len(products),
		GeneratedAt:  time.Now(),
	}

	log.Infof("Generated feed: %d products, %d items", result.ProductCount, len(items))
	return result, nil
}
