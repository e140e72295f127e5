package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
)

// Client talks to the applicant API. The list call is cached for a
// short TTL so a busy dashboard doesn't hammer the backend; every
// mutating action invalidates the cache.
type Client struct {
	baseURL string
	http    *http.Client
	ttl     time.Duration

	mu        sync.Mutex
	cached    []*domain.Applicant
	fetchedAt time.Time
}

func NewClient(baseURL string, ttl time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		ttl:     ttl,
	}
}

// Applicants returns the applicant list, served from cache when fresh.
func (c *Client) Applicants(ctx context.Context) ([]*domain.Applicant, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		out := c.cached
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	var list []*domain.Applicant
	if err := c.do(ctx, http.MethodGet, "/api/applicants", nil, &list); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cached = list
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return list, nil
}

// Invalidate drops the cached list so the next read re-polls the API.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

// UpdatePayload is a partial update; nil fields are omitted.
type UpdatePayload struct {
	Name        *string `json:"name,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	Status      *string `json:"status,omitempty"`
	Risk        *string `json:"risk,omitempty"`
	IncomeMatch *string `json:"income_match,omitempty"`
	ErrorRate   *string `json:"error_rate,omitempty"`
}

func (c *Client) Create(ctx context.Context, name, unit string) error {
	payload := map[string]string{"name": name, "unit": unit}
	return c.do(ctx, http.MethodPost, "/api/applicants", payload, nil)
}

func (c *Client) Update(ctx context.Context, id int, payload UpdatePayload) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/applicants/%d", id), payload, nil)
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/applicants/%d", id), nil, nil)
}

// Approve moves the applicant to Approved/Leased.
func (c *Client) Approve(ctx context.Context, id int) error {
	status := string(domain.StatusApproved)
	return c.Update(ctx, id, UpdatePayload{Status: &status})
}

// OverrideDeny records a human override of the agent's decision.
func (c *Client) OverrideDeny(ctx context.Context, id int) error {
	status := string(domain.StatusDeniedOverridden)
	return c.Update(ctx, id, UpdatePayload{Status: &status})
}

func (c *Client) RunDecision(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/applicants/%d/run-decision", id), nil, nil)
}

// Health probes the API's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %s (%d)", method, path, strings.TrimSpace(string(msg)), resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
