// Package aur queries the AUR RPC interface for package popularity.
package aur

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/atomicstack/pkgsorter/internal/logging/events"
	json "github.com/goccy/go-json"
)

const (
	DefaultBaseURL   = "https://aur.archlinux.org/rpc/v5/info"
	DefaultBatchSize = 150
	defaultInterval  = 250 * time.Millisecond
)

// Info is the subset of an AUR info record the catalog uses.
type Info struct {
	Name       string  `json:"Name"`
	Popularity float64 `json:"Popularity"`
	NumVotes   int     `json:"NumVotes"`
}

type response struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Results []Info `json:"results"`
}

// Client fetches AUR metadata in throttled batches.
type Client struct {
	BaseURL   string
	BatchSize int
	HTTP      *http.Client

	throttle *throttle
}

// NewClient returns a client using the public AUR endpoint.
func NewClient() *Client {
	return &Client{
		BaseURL:   DefaultBaseURL,
		BatchSize: DefaultBatchSize,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		throttle:  newThrottle(defaultInterval),
	}
}

// Info looks up names and returns records keyed by package name. Records
// gathered before a failing batch are returned together with the error.
func (c *Client) Info(ctx context.Context, names []string) (map[string]Info, error) {
	out := make(map[string]Info, len(names))
	size := c.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	for start := 0; start < len(names); start += size {
		end := start + size
		if end > len(names) {
			end = len(names)
		}
		if err := c.throttle.wait(ctx); err != nil {
			return out, err
		}
		results, err := c.fetch(ctx, names[start:end])
		if err != nil {
			return out, err
		}
		for _, r := range results {
			out[r.Name] = r
		}
		events.Load.AURBatch(end-start, len(results))
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, names []string) ([]Info, error) {
	query := url.Values{}
	for _, name := range names {
		query.Add("arg[]", name)
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build AUR request: %w", err)
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AUR request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read AUR response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AUR request: unexpected status %s", resp.Status)
	}
	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode AUR response: %w", err)
	}
	if decoded.Type == "error" {
		return nil, fmt.Errorf("AUR error: %s", decoded.Error)
	}
	return decoded.Results, nil
}
