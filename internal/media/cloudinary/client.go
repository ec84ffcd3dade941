package cloudinary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIBaseURL = "https://api.cloudinary.com"

	// MaxResults caps a folder listing; it is also the largest page the search API serves
	MaxResults = 500

	defaultTimeout = 30 * time.Second
)

// Options configure a Client
type Options struct {
	CloudName         string
	APIKey            string
	APISecret         string
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration

	// OnCall, when set, observes every search request
	OnCall func(duration time.Duration, err error)
}

// Client queries the media host search API
type Client struct {
	opts       Options
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new search client
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultAPIBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(limit, 2),
	}
}

// APIError carries the status and body of a non-2xx search response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("media host returned status %d: %s", e.StatusCode, e.Body)
}

type searchRequest struct {
	Expression string   `json:"expression"`
	MaxResults int      `json:"max_results"`
	WithField  []string `json:"with_field"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type searchResponse struct {
	TotalCount int              `json:"total_count"`
	NextCursor string           `json:"next_cursor"`
	Resources  []searchResource `json:"resources"`
}

type searchResource struct {
	PublicID     string         `json:"public_id"`
	Format       string         `json:"format"`
	ResourceType string         `json:"resource_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Tags         []string       `json:"tags"`
	Context      map[string]any `json:"context"`
	SecureURL    string         `json:"secure_url"`
}

// FetchResources lists every asset in exactly the given folder, up to MaxResults.
// Failures wrap domain.ErrUpstreamFetch; an empty folder yields an empty slice and no error.
func (c *Client) FetchResources(ctx context.Context, folder string) ([]domain.RemoteAsset, error) {
	assets := make([]domain.RemoteAsset, 0)
	cursor := ""

	for len(assets) < MaxResults {
		page, err := c.search(ctx, searchRequest{
			Expression: fmt.Sprintf("folder=%q", folder),
			MaxResults: MaxResults - len(assets),
			WithField:  []string{"tags", "context"},
			NextCursor: cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: folder %q: %v", domain.ErrUpstreamFetch, folder, err)
		}

		for _, r := range page.Resources {
			assets = append(assets, r.toAsset())
		}

		if page.NextCursor == "" || len(page.Resources) == 0 {
			break
		}
		cursor = page.NextCursor
	}

	if len(assets) > MaxResults {
		assets = assets[:MaxResults]
	}
	return assets, nil
}

func (c *Client) search(ctx context.Context, body searchRequest) (*searchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.doSearch(ctx, body)
	if c.opts.OnCall != nil {
		c.opts.OnCall(time.Since(start), err)
	}
	return resp, err
}

func (c *Client) doSearch(ctx context.Context, body searchRequest) (*searchResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/resources/search", c.opts.BaseURL, c.opts.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.opts.APIKey, c.opts.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call media host: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: snippet(respBody, 300)}
	}

	var out searchResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &out, nil
}

// DecodeSearchResponse maps a saved search API response body to assets
func DecodeSearchResponse(body []byte) ([]domain.RemoteAsset, error) {
	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	assets := make([]domain.RemoteAsset, 0, len(out.Resources))
	for _, r := range out.Resources {
		assets = append(assets, r.toAsset())
	}
	return assets, nil
}

func (r searchResource) toAsset() domain.RemoteAsset {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.RemoteAsset{
		PublicID:    r.PublicID,
		Format:      r.Format,
		Width:       r.Width,
		Height:      r.Height,
		Tags:        tags,
		Title:       contextValue(r.Context, "title"),
		Description: contextValue(r.Context, "description"),
		SecureURL:   r.SecureURL,
	}
}

// contextValue reads a metadata field that is either flat or nested under "custom"
func contextValue(ctx map[string]any, key string) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx[key].(string); ok {
		return strings.TrimSpace(v)
	}
	if custom, ok := ctx["custom"].(map[string]any); ok {
		if v, ok := custom[key].(string); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
