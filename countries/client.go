// Package countries provides a minimal client for a REST-countries-style
// country data provider.
package countries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound means the provider has no country matching the query. It is a
// domain-level outcome, not a transport failure.
var ErrNotFound = errors.New("country not found")

// Country is the subset of provider fields this server consumes.
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Population int64    `json:"population"`
}

// Client is a minimal HTTP client for country lookups.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a new client. If httpClient is nil, a default with a 10s
// timeout is used; lookups must always have a bounded timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// Lookup fetches the first country matching name. A provider 404 maps to
// ErrNotFound; any other non-2xx status is a transport error.
func (c *Client) Lookup(ctx context.Context, name string) (*Country, error) {
	reqURL := fmt.Sprintf("%s/v3.1/name/%s?fields=name,capital,region,subregion,population",
		c.BaseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("country provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("country provider status %d", resp.StatusCode)
	}

	var matches []Country
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("country provider decode: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return &matches[0], nil
}
