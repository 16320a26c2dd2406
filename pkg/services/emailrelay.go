package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const emailRelayEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

var ErrRelayDisabled = errors.New("relay not configured")

type EmailRelayOptions struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Endpoint   string
	HTTPClient *http.Client
}

// EmailRelay sends template emails through the hosted transactional email API.
type EmailRelay struct {
	opts EmailRelayOptions
	http *http.Client
}

func NewEmailRelay(opts EmailRelayOptions) *EmailRelay {
	if opts.Endpoint == "" {
		opts.Endpoint = emailRelayEndpoint
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &EmailRelay{opts: opts, http: httpClient}
}

func (r *EmailRelay) Enabled() bool {
	return r.opts.ServiceID != "" && r.opts.TemplateID != "" && r.opts.PublicKey != ""
}

// Send posts params to the configured template.
func (r *EmailRelay) Send(ctx context.Context, params map[string]string) error {
	if !r.Enabled() {
		return ErrRelayDisabled
	}

	payload := map[string]interface{}{
		"service_id":      r.opts.ServiceID,
		"template_id":     r.opts.TemplateID,
		"user_id":         r.opts.PublicKey,
		"template_params": params,
	}
	if r.opts.PrivateKey != "" {
		payload["accessToken"] = r.opts.PrivateKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("email relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("email relay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}
	return nil
}
