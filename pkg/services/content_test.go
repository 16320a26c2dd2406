package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"estate-site/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeFetcher answers queries from canned JSON keyed by query text.
type fakeFetcher struct {
	mu      sync.Mutex
	results map[string]string
	errs    map[string]error
	calls   map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		results: make(map[string]string),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, query string, params map[string]interface{}, out interface{}) error {
	f.mu.Lock()
	f.calls[query]++
	raw, ok := f.results[query]
	err := f.errs[query]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if !ok {
		raw = "null"
	}
	return json.Unmarshal([]byte(raw), out)
}

func (f *fakeFetcher) count(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[query]
}

func TestContentHomeParallel(t *testing.T) {
	f := newFakeFetcher()
	f.results[featuredPropertiesQuery] = `[{"_id":"p1","title":"Villa"}]`
	f.results[latestPostsQuery] = `[{"_id":"b1","title":"Report"},{"_id":"b2","title":"Guide"}]`
	f.results[reviewsQuery] = `[{"_id":"r1","name":"Esi","rating":5}]`

	svc := NewContentService(f, NewQueryCache(0), zaptest.NewLogger(t))
	home, err := svc.Home(context.Background())
	require.NoError(t, err)

	assert.Len(t, home.Featured, 1)
	assert.Len(t, home.Posts, 2)
	assert.Len(t, home.Reviews, 1)
}

func TestContentHomeFailsWhenAnyQueryFails(t *testing.T) {
	f := newFakeFetcher()
	f.results[featuredPropertiesQuery] = `[]`
	f.results[reviewsQuery] = `[]`
	f.errs[latestPostsQuery] = &APIError{Status: 500, Description: "boom"}

	svc := NewContentService(f, nil, nil)
	_, err := svc.Home(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "latest posts")
}

func TestContentPropertiesFiltersAndCaches(t *testing.T) {
	f := newFakeFetcher()
	raw, err := json.Marshal(sampleProperties())
	require.NoError(t, err)
	f.results[propertiesQuery] = string(raw)

	svc := NewContentService(f, NewQueryCache(time.Minute), zaptest.NewLogger(t))

	data, err := svc.Properties(context.Background(), ListingFilter{Status: "sale"})
	require.NoError(t, err)
	assert.Equal(t, 4, data.Total)
	assert.Equal(t, []string{"4", "3", "1"}, ids(data.Properties))
	assert.Equal(t, []string{"East Legon", "Airport", "Tema"}, data.Locations)

	_, err = svc.Properties(context.Background(), ListingFilter{Status: "rent"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.count(propertiesQuery), "second call served from cache")

	svc.Invalidate()
	_, err = svc.Properties(context.Background(), ListingFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.count(propertiesQuery))
}

func TestContentPropertyNotFound(t *testing.T) {
	svc := NewContentService(newFakeFetcher(), NewQueryCache(time.Minute), nil)
	_, err := svc.Property(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentPropertyWithRelated(t *testing.T) {
	f := newFakeFetcher()
	f.results[propertyBySlugQuery] = `{"_id":"p1","title":"Villa","propertyType":"house","slug":{"current":"villa"},"agent":{"_id":"a1","name":"Kojo"}}`
	f.results[relatedPropertiesQuery] = `[{"_id":"p2","title":"Other house"}]`

	svc := NewContentService(f, nil, zaptest.NewLogger(t))
	data, err := svc.Property(context.Background(), "villa")
	require.NoError(t, err)
	assert.Equal(t, "Villa", data.Property.Title)
	require.NotNil(t, data.Property.Agent)
	assert.Equal(t, "Kojo", data.Property.Agent.Name)
	assert.Len(t, data.Related, 1)
}

func TestContentPropertyRelatedFailureIsTolerated(t *testing.T) {
	f := newFakeFetcher()
	f.results[propertyBySlugQuery] = `{"_id":"p1","title":"Villa","propertyType":"house"}`
	f.errs[relatedPropertiesQuery] = errors.New("timeout")

	svc := NewContentService(f, nil, zaptest.NewLogger(t))
	data, err := svc.Property(context.Background(), "villa")
	require.NoError(t, err)
	assert.Empty(t, data.Related)
}

func TestContentPosts(t *testing.T) {
	f := newFakeFetcher()
	f.results[postsQuery] = `[
		{"_id":"a","title":"Land guide","categories":[{"title":"Guides","slug":{"current":"guides"}}]},
		{"_id":"b","title":"Market","categories":[{"title":"Market","slug":{"current":"market"}}]}
	]`
	f.results[categoriesQuery] = `[{"_id":"c1","title":"Guides","slug":{"current":"guides"}}]`

	svc := NewContentService(f, nil, nil)
	data, err := svc.Posts(context.Background(), PostFilter{Category: "guides"})
	require.NoError(t, err)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, "a", data.Posts[0].ID)
	assert.Len(t, data.Categories, 1)
}

func TestContentPost(t *testing.T) {
	f := newFakeFetcher()
	f.results[postBySlugQuery] = `{"_id":"a","title":"Land guide","comments":[{"_id":"c1","name":"Yaw","comment":"Useful","approved":true}]}`

	svc := NewContentService(f, nil, nil)
	post, err := svc.Post(context.Background(), "land-guide")
	require.NoError(t, err)
	assert.Equal(t, "Land guide", post.Title)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "Yaw", post.Comments[0].Name)

	delete(f.results, postBySlugQuery)
	_, err = svc.Post(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentSellRequestsSkipsCache(t *testing.T) {
	f := newFakeFetcher()
	f.results[sellRequestsQuery] = `[{"_id":"s1","name":"Ama","location":"Tema"}]`

	svc := NewContentService(f, NewQueryCache(time.Hour), nil)
	for i := 0; i < 2; i++ {
		reqs, err := svc.SellRequests(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []models.SellRequest{{ID: "s1", Name: "Ama", Location: "Tema"}}, reqs)
	}
	assert.Equal(t, 2, f.count(sellRequestsQuery))
}
