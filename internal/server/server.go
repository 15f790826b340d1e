package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/cache"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/repository"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/service"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

// Generator produces one complete feed run.
type Generator interface {
	Generate(ctx context.Context) (*service.Result, error)
}

type errResponse struct {
	Error string `json:"error"`
}

type generateResponse struct {
	Message      string `json:"message"`
	ProductCount int    `json:"productCount"`
}

// Server exposes the generated feed over HTTP. A time-boxed cache sits in
// front of the pipeline; when regeneration fails a stale cached feed is
// served in preference to an error, because the shopping-ad crawlers
// consuming this endpoint tolerate staleness far better than a 5xx.
type Server struct {
	generator  Generator
	cache      cache.FeedCache
	repository repository.RunRepository // nil when no database is configured
	cacheTTL   time.Duration
	outputPath string
}

func New(generator Generator, feedCache cache.FeedCache, repo repository.RunRepository, cacheTTL time.Duration, outputPath string) *Server {
	return &Server{
		generator:  generator,
		cache:      feedCache,
		repository: repo,
		cacheTTL:   cacheTTL,
		outputPath: outputPath,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/productfeed", s.handleXMLFeed)
	r.Get("/api/productfeed.csv", s.handleCSVFeed)
	r.Post("/api/generate-feed", s.handleGenerate)

	return r
}

func (s *Server) handleXMLFeed(w http.ResponseWriter, r *http.Request) {
	entry, err := s.currentFeed(r.Context())
	if err != nil {
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}

	s.writeFeed(w, entry.XML, "application/xml; charset=utf-8")
}

func (s *Server) handleCSVFeed(w http.ResponseWriter, r *http.Request) {
	entry, err := s.currentFeed(r.Context())
	if err != nil {
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}

	s.writeFeed(w, entry.CSV, "text/csv; charset=utf-8")
}

// handleGenerate forces a fresh run, refreshes the cache and writes the
// XML to the static output path, answering with a JSON summary.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.generator.Generate(ctx)
	if err != nil {
		s.recordRun(ctx, domain.FeedRun{GeneratedAt: time.Now(), Success: false, Error: err.Error()})
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, errResponse{Error: err.Error()})
		return
	}

	s.storeResult(ctx, result)
	if err := WriteFeedFile(s.outputPath, result.XML); err != nil {
		log.Errorf("Failed to write feed file: %v", err)
	}

	render.JSON(w, r, generateResponse{
		Message:      "Feed generated successfully",
		ProductCount: result.ProductCount,
	})
}

// currentFeed serves from cache while fresh, regenerates when stale or
// missing, and falls back to a stale entry when regeneration fails.
func (s *Server) currentFeed(ctx context.Context) (*cache.Entry, error) {
	entry, fresh, err := s.cache.Get(ctx)
	if err != nil {
		log.Errorf("Feed cache read failed: %v", err)
	}
	if entry != nil && fresh {
		return entry, nil
	}

	result, genErr := s.generator.Generate(ctx)
	if genErr != nil {
		s.recordRun(ctx, domain.FeedRun{GeneratedAt: time.Now(), Success: false, Error: genErr.Error()})
		if entry != nil {
			log.Warnf("Feed regeneration failed, serving stale copy from %s: %v",
				entry.GeneratedAt.Format(time.RFC3339), genErr)
			return entry, nil
		}
		return nil, genErr
	}

	return s.storeResult(ctx, result), nil
}

func (s *Server) storeResult(ctx context.Context, result *service.Result) *cache.Entry {
	entry := cache.Entry{
		XML:          result.XML,
		CSV:          result.CSV,
		ProductCount: result.ProductCount,
		GeneratedAt:  result.GeneratedAt,
	}
	if err := s.cache.Set(ctx, entry); err != nil {
		log.Errorf("Feed cache write failed: %v", err)
	}

	s.recordRun(ctx, domain.FeedRun{
		GeneratedAt:  result.GeneratedAt,
		ProductCount: result.ProductCount,
		ItemCount:    len(result.Items),
		Success:      true,
	})
	if s.repository != nil {
		if err := s.repository.SaveLatestFeed(ctx, result.XML, result.GeneratedAt); err != nil {
			log.Errorf("Failed to persist latest feed: %v", err)
		}
	}

	return &entry
}

func (s *Server) recordRun(ctx context.Context, run domain.FeedRun) {
	if s.repository == nil {
		return
	}
	if err := s.repository.SaveRun(ctx, run); err != nil {
		log.Errorf("Failed to record feed run: %v", err)
	}
}

func (s *Server) writeFeed(w http.ResponseWriter, payload, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(s.cacheTTL.Seconds())))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(payload)); err != nil {
		log.Errorf("Failed to write feed response: %v", err)
	}
}

// WriteFeedFile writes the XML document to the static serving path,
// creating parent directories as needed.
func WriteFeedFile(path, xml string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create feed directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(xml), 0o644); err != nil {
		return fmt.Errorf("write feed file: %w", err)
	}
	return nil
}
