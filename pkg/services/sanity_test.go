package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"estate-site/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string, h http.HandlerFunc) *SanityClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewSanityClient(SanityOptions{
		ProjectID: "proj",
		Dataset:   "production",
		Token:     token,
		BaseURL:   srv.URL,
	})
}

func TestQueryURL(t *testing.T) {
	c := NewSanityClient(SanityOptions{ProjectID: "abc", Dataset: "production", UseCDN: true})
	raw, err := c.QueryURL(`*[_type == "post" && slug.current == $slug][0]`, map[string]interface{}{"slug": "accra-market"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(raw, "https://abc.apicdn.sanity.io/v2023-05-03/data/query/production?"), raw)
	assert.Contains(t, raw, "%24slug=%22accra-market%22")
}

func TestQueryURLSkipsCDNWithToken(t *testing.T) {
	c := NewSanityClient(SanityOptions{ProjectID: "abc", Dataset: "staging", APIVersion: "v2021-10-21", Token: "secret", UseCDN: true})
	raw, err := c.QueryURL("*", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "https://abc.api.sanity.io/v2021-10-21/data/query/staging?"), raw)
}

func TestFetchDecodesResult(t *testing.T) {
	var gotQuery, gotParam string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotParam = r.URL.Query().Get("$limit")
		assert.Equal(t, "/v2023-05-03/data/query/production", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"ms":3,"query":"x","result":[{"_id":"p1","title":"Villa","price":450000,"slug":{"current":"villa"}}]}`))
	})

	var out []models.Property
	err := c.Fetch(context.Background(), featuredPropertiesQuery, map[string]interface{}{"limit": 3}, &out)
	require.NoError(t, err)

	assert.Equal(t, featuredPropertiesQuery, gotQuery)
	assert.Equal(t, "3", gotParam)
	require.Len(t, out, 1)
	assert.Equal(t, "villa", out[0].Slug.Current)
	assert.Equal(t, 450000.0, out[0].Price)
}

func TestFetchNullResult(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":null}`))
	})

	var p *models.Property
	require.NoError(t, c.Fetch(context.Background(), propertyBySlugQuery, map[string]interface{}{"slug": "nope"}, &p))
	assert.Nil(t, p)
}

func TestFetchAPIError(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"expected '}' following object body","type":"queryParseError"}}`))
	})

	err := c.Fetch(context.Background(), "*[", nil, &[]models.Post{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Description, "expected '}'")
}

func TestMutateRequiresToken(t *testing.T) {
	called := false
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.Mutate(context.Background(), Mutation{"create": map[string]interface{}{"_type": "comment"}})
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, called)
}

func TestCreateSendsMutation(t *testing.T) {
	var body struct {
		Mutations []map[string]map[string]interface{} `json:"mutations"`
	}
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2023-05-03/data/mutate/production", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"transactionId":"tx1","results":[{"id":"x","operation":"create"}]}`))
	})

	id, err := c.Create(context.Background(), "sellRequest", map[string]interface{}{"name": "Kwame"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, body.Mutations, 1)
	doc := body.Mutations[0]["create"]
	assert.Equal(t, "sellRequest", doc["_type"])
	assert.Equal(t, "Kwame", doc["name"])
	assert.Equal(t, id, doc["_id"])
}
