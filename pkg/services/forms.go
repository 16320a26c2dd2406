package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FormsBackend posts submissions to a hosted forms service as
// application/x-www-form-urlencoded with a form-name field.
type FormsBackend struct {
	endpoint string
	http     *http.Client
}

func NewFormsBackend(endpoint string, httpClient *http.Client) *FormsBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &FormsBackend{endpoint: endpoint, http: httpClient}
}

func (f *FormsBackend) Enabled() bool { return f.endpoint != "" }

func (f *FormsBackend) Submit(ctx context.Context, formName string, fields map[string]string) error {
	if !f.Enabled() {
		return ErrRelayDisabled
	}

	values := url.Values{}
	values.Set("form-name", formName)
	for k, v := range fields {
		values.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("forms backend: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return fmt.Errorf("forms backend returned %d", resp.StatusCode)
	}
	return nil
}
