package services

import (
	"context"
	"fmt"

	"estate-site/pkg/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	featuredLimit = 6
	latestLimit   = 3
	reviewsLimit  = 6
	relatedLimit  = 3
	adminLimit    = 100
)

// Fetcher is the read side of the content store.
type Fetcher interface {
	Fetch(ctx context.Context, query string, params map[string]interface{}, out interface{}) error
}

type HomeData struct {
	Featured []models.Property `json:"featured"`
	Posts    []models.Post     `json:"posts"`
	Reviews  []models.Review   `json:"reviews"`
}

type ListingsData struct {
	Properties []models.Property `json:"properties"`
	Locations  []string          `json:"locations"`
	Total      int               `json:"total"`
	Filter     ListingFilter     `json:"filter"`
}

type PropertyData struct {
	Property *models.Property  `json:"property"`
	Related  []models.Property `json:"related"`
}

type InsightsData struct {
	Posts      []models.Post     `json:"posts"`
	Categories []models.Category `json:"categories"`
	Filter     PostFilter        `json:"filter"`
}

// ContentService turns content store queries into page data.
type ContentService struct {
	client Fetcher
	cache  *QueryCache
	logger *zap.Logger
}

func NewContentService(client Fetcher, cache *QueryCache, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{client: client, cache: cache, logger: logger}
}

func (s *ContentService) fetch(ctx context.Context, query string, params map[string]interface{}, out interface{}) error {
	key := cacheKey(query, params)
	if s.cache.Get(key, out) {
		return nil
	}
	if err := s.client.Fetch(ctx, query, params, out); err != nil {
		return err
	}
	s.cache.Set(key, out)
	return nil
}

// Home loads featured listings, latest insights and testimonials in parallel.
func (s *ContentService) Home(ctx context.Context) (*HomeData, error) {
	var data HomeData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.fetch(gctx, featuredPropertiesQuery, map[string]interface{}{"limit": featuredLimit}, &data.Featured); err != nil {
			return fmt.Errorf("featured properties: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.fetch(gctx, latestPostsQuery, map[string]interface{}{"limit": latestLimit}, &data.Posts); err != nil {
			return fmt.Errorf("latest posts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.fetch(gctx, reviewsQuery, map[string]interface{}{"limit": reviewsLimit}, &data.Reviews); err != nil {
			return fmt.Errorf("reviews: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *ContentService) Properties(ctx context.Context, filter ListingFilter) (*ListingsData, error) {
	var all []models.Property
	if err := s.fetch(ctx, propertiesQuery, nil, &all); err != nil {
		return nil, fmt.Errorf("properties: %w", err)
	}
	matched := filter.Apply(all)
	s.logger.Debug("listings filtered",
		zap.Int("total", len(all)),
		zap.Int("matched", len(matched)),
		zap.Any("filter", filter),
	)
	return &ListingsData{
		Properties: matched,
		Locations:  Locations(all),
		Total:      len(all),
		Filter:     filter,
	}, nil
}

func (s *ContentService) Property(ctx context.Context, slug string) (*PropertyData, error) {
	var p *models.Property
	if err := s.fetch(ctx, propertyBySlugQuery, map[string]interface{}{"slug": slug}, &p); err != nil {
		return nil, fmt.Errorf("property %s: %w", slug, err)
	}
	if p == nil {
		return nil, ErrNotFound
	}

	data := &PropertyData{Property: p}
	params := map[string]interface{}{"type": p.PropertyType, "slug": slug, "limit": relatedLimit}
	if err := s.fetch(ctx, relatedPropertiesQuery, params, &data.Related); err != nil {
		// Related listings are decoration; the page still renders.
		s.logger.Warn("related properties", zap.String("slug", slug), zap.Error(err))
	}
	return data, nil
}

func (s *ContentService) Posts(ctx context.Context, filter PostFilter) (*InsightsData, error) {
	var data InsightsData
	g, gctx := errgroup.WithContext(ctx)

	var all []models.Post
	g.Go(func() error {
		if err := s.fetch(gctx, postsQuery, nil, &all); err != nil {
			return fmt.Errorf("posts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		cats, err := s.Categories(gctx)
		data.Categories = cats
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.Posts = filter.Apply(all)
	data.Filter = filter
	return &data, nil
}

func (s *ContentService) Categories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.fetch(ctx, categoriesQuery, nil, &out); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return out, nil
}

func (s *ContentService) Post(ctx context.Context, slug string) (*models.Post, error) {
	var p *models.Post
	if err := s.fetch(ctx, postBySlugQuery, map[string]interface{}{"slug": slug}, &p); err != nil {
		return nil, fmt.Errorf("post %s: %w", slug, err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// SellRequests bypasses the cache; the admin dashboard wants fresh leads.
func (s *ContentService) SellRequests(ctx context.Context) ([]models.SellRequest, error) {
	var out []models.SellRequest
	if err := s.client.Fetch(ctx, sellRequestsQuery, map[string]interface{}{"limit": adminLimit}, &out); err != nil {
		return nil, fmt.Errorf("sell requests: %w", err)
	}
	return out, nil
}

func (s *ContentService) Invalidate() {
	n := s.cache.Len()
	s.cache.Invalidate()
	s.logger.Info("content cache invalidated", zap.Int("entries", n))
}
