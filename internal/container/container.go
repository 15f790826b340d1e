package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/cache"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/client"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/config"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/domain"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/feed"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/repository"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/server"
	"github.com/CJJKwintje/teddyshondenshop-sub000/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.StorefrontClient
	Cache      cache.FeedCache
	Repository repository.RunRepository
	Service    *service.Service
	Server     *server.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	storefront := client.NewStorefrontClient(cfg.Shopify)
	container.Client = storefront

	classifier := feed.NewClassifier(feed.DefaultCategoryTable())
	projector := feed.NewProjector(cfg.Feed.SiteBaseURL, cfg.Feed.Currency)
	container.Service = service.NewService(storefront, classifier, projector)

	ttl := time.Duration(cfg.Feed.CacheTTL) * time.Second

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("Connected to Redis, using shared feed cache")

		container.redis = rdb
		container.Cache = cache.NewRedisCache(rdb, ttl)
	} else {
		container.Cache = cache.NewMemoryCache(ttl)
	}

	if cfg.Database.Host != "" {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		container.db = db
		container.Repository = repository.NewRunRepository(db)
	}

	container.Server = server.New(container.Service, container.Cache, container.Repository, ttl, cfg.Feed.OutputPath)

	return container, nil
}

// Run serves the feed endpoints until the context is cancelled.
func (c *Container) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", c.Config.Server.Host, c.Config.Server.Port),
		Handler: c.Server.Routes(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Serving product feed on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// GenerateOnce runs the pipeline a single time and writes the XML to the
// configured output path. This is the CLI entry path.
func (c *Container) GenerateOnce(ctx context.Context) error {
	result, err := c.Service.Generate(ctx)
	if err != nil {
		if c.Repository != nil {
			if saveErr := c.Repository.SaveRun(ctx, domain.FeedRun{
				GeneratedAt: time.Now(),
				Success:     false,
				Error:       err.Error(),
			}); saveErr != nil {
				log.Errorf("Failed to record failed run: %v", saveErr)
			}
		}
		return err
	}

	if err := server.WriteFeedFile(c.Config.Feed.OutputPath, result.XML); err != nil {
		return err
	}

	if err := c.Cache.Set(ctx, cache.Entry{
		XML:          result.XML,
		CSV:          result.CSV,
		ProductCount: result.ProductCount,
		GeneratedAt:  result.GeneratedAt,
	}); err != nil {
		log.Errorf("Feed cache write failed: %v", err)
	}

	if c.Repository != nil {
		if err := c.Repository.SaveRun(ctx, domain.FeedRun{
			GeneratedAt:  result.GeneratedAt,
			ProductCount: result.ProductCount,
			ItemCount:    len(result.Items),
			Success:      true,
		}); err != nil {
			log.Errorf("Failed to record feed run: %v", err)
		}
		if err := c.Repository.SaveLatestFeed(ctx, result.XML, result.GeneratedAt); err != nil {
			log.Errorf("Failed to persist latest feed: %v", err)
		}
	}

	log.Infof("Wrote %s: %d products, %d feed items", c.Config.Feed.OutputPath, result.ProductCount, len(result.Items))
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}
	return nil
}
