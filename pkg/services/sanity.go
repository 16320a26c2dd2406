package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultAPIVersion = "2023-05-03"

var (
	ErrNotFound = errors.New("not found")
	ErrNoToken  = errors.New("content store token not configured")
)

// APIError is returned when the content store answers with a non-2xx status.
type APIError struct {
	Status      int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content store: %d %s", e.Status, e.Description)
}

type SanityOptions struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
	HTTPClient *http.Client
	// BaseURL replaces https://<project>.api[cdn].sanity.io when set.
	BaseURL string
}

// SanityClient sends GROQ queries and mutations to the hosted document store.
type SanityClient struct {
	opts SanityOptions
	http *http.Client
}

func NewSanityClient(opts SanityOptions) *SanityClient {
	if opts.APIVersion == "" {
		opts.APIVersion = defaultAPIVersion
	}
	opts.APIVersion = strings.TrimPrefix(opts.APIVersion, "v")
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &SanityClient{opts: opts, http: httpClient}
}

func (c *SanityClient) ProjectID() string { return c.opts.ProjectID }
func (c *SanityClient) Dataset() string   { return c.opts.Dataset }

func (c *SanityClient) host(cdn bool) string {
	if c.opts.BaseURL != "" {
		return strings.TrimSuffix(c.opts.BaseURL, "/")
	}
	api := "api"
	if cdn {
		api = "apicdn"
	}
	return fmt.Sprintf("https://%s.%s.sanity.io", c.opts.ProjectID, api)
}

// QueryURL builds the GET URL for a query. Params are JSON-encoded as $name.
func (c *SanityClient) QueryURL(query string, params map[string]interface{}) (string, error) {
	v := url.Values{}
	v.Set("query", query)
	for name, val := range params {
		encoded, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("encode param %s: %w", name, err)
		}
		v.Set("$"+name, string(encoded))
	}
	// The CDN never serves authenticated requests.
	cdn := c.opts.UseCDN && c.opts.Token == ""
	return fmt.Sprintf("%s/v%s/data/query/%s?%s", c.host(cdn), c.opts.APIVersion, c.opts.Dataset, v.Encode()), nil
}

// Fetch runs a query and decodes its result into out.
func (c *SanityClient) Fetch(ctx context.Context, query string, params map[string]interface{}, out interface{}) error {
	endpoint, err := c.QueryURL(query, params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.do(req, &envelope); err != nil {
		return err
	}
	if out == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode query result: %w", err)
	}
	return nil
}

// Mutation is one entry of a mutate request, e.g. {"create": {...}}.
type Mutation map[string]interface{}

type MutateResult struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
	} `json:"results"`
}

// Mutate applies mutations. It always targets the live API, never the CDN.
func (c *SanityClient) Mutate(ctx context.Context, mutations ...Mutation) (*MutateResult, error) {
	if c.opts.Token == "" {
		return nil, ErrNoToken
	}

	body, err := json.Marshal(map[string]interface{}{"mutations": mutations})
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/v%s/data/mutate/%s?returnIds=true", c.host(false), c.opts.APIVersion, c.opts.Dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	var res MutateResult
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Create stores doc as a new document of the given type and returns its ID.
func (c *SanityClient) Create(ctx context.Context, docType string, doc map[string]interface{}) (string, error) {
	fields := make(map[string]interface{}, len(doc)+2)
	for k, v := range doc {
		fields[k] = v
	}
	fields["_type"] = docType
	id, _ := fields["_id"].(string)
	if id == "" {
		id = uuid.NewString()
		fields["_id"] = id
	}

	if _, err := c.Mutate(ctx, Mutation{"create": fields}); err != nil {
		return "", fmt.Errorf("create %s: %w", docType, err)
	}
	return id, nil
}

func (c *SanityClient) authorize(req *http.Request) {
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}
}

func (c *SanityClient) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content store request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read content store response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Description: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error struct {
				Description string `json:"description"`
			} `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.Error.Description != "" {
				apiErr.Description = payload.Error.Description
			} else if payload.Message != "" {
				apiErr.Description = payload.Message
			}
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode content store response: %w", err)
	}
	return nil
}
