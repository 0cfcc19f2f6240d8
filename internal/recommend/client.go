// Package recommend talks to the external recommendation service used by smart
// search and the owner suggestion endpoints.
package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hostelfinder/internal/logging"
	"hostelfinder/internal/metrics"

	"github.com/goccy/go-json"
)

// ErrUpstream wraps every failure of the remote service: transport, status or decoding.
var ErrUpstream = errors.New("recommendation service error")

// Recommender is the surface the rest of the app depends on.
type Recommender interface {
	Recommend(ctx context.Context, req RecommendRequest) (map[string]any, error)
	SimilarLocations(ctx context.Context, pincode string) ([]string, error)
	SuggestFacilities(ctx context.Context, preferences []string) ([]string, error)
	SuggestPrice(ctx context.Context, location string, facilities []string) (float64, error)
}

type RecommendRequest struct {
	Pincode     string   `json:"pincode"`
	Budget      *float64 `json:"budget"`
	Preferences []string `json:"preferences"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ Recommender = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Recommend(ctx context.Context, req RecommendRequest) (map[string]any, error) {
	if req.Preferences == nil {
		req.Preferences = []string{}
	}
	var out map[string]any
	if err := c.post(ctx, "recommend", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SimilarLocations(ctx context.Context, pincode string) ([]string, error) {
	var out []string
	if err := c.post(ctx, "similar-locations", map[string]string{"pincode": pincode}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SuggestFacilities(ctx context.Context, preferences []string) ([]string, error) {
	if preferences == nil {
		preferences = []string{}
	}
	var out []string
	if err := c.post(ctx, "suggest-facilities", map[string][]string{"preferences": preferences}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SuggestPrice(ctx context.Context, location string, facilities []string) (float64, error) {
	if facilities == nil {
		facilities = []string{}
	}
	body := map[string]any{"location": location, "facilities": facilities}

	var out struct {
		SuggestedPrice *float64 `json:"suggested_price"`
	}
	if err := c.post(ctx, "suggest-price", body, &out); err != nil {
		return 0, err
	}
	if out.SuggestedPrice == nil {
		return 0, fmt.Errorf("%w: suggest-price: missing suggested_price", ErrUpstream)
	}
	return *out.SuggestedPrice, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordRecommendCall(endpoint, err, time.Since(start))
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("endpoint", endpoint).Dur("latency", time.Since(start)).Msg("recommendation call failed")
		}
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUpstream, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: status %d: %s", ErrUpstream, endpoint, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrUpstream, endpoint, err)
	}
	return nil
}
