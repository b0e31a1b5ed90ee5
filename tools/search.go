package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rickchristie/reagent"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	// SearchName is the name the model uses to call the search tool.
	SearchName = "search"

	// DefaultSearchEndpoint is the SerpAPI search endpoint.
	DefaultSearchEndpoint = "https://serpapi.com/search"

	searchTimeout     = 30 * time.Second
	searchDescription = "a search engine. useful for when you need to answer questions about " +
		"current events. input should be a search query."
)

// Result paths tried in order. The first non-empty value is the answer.
var searchAnswerPaths = []string{
	"answer_box.answer",
	"answer_box.snippet",
	"organic_results.0.snippet",
}

// Search queries SerpAPI and extracts a short textual answer from the response.
//
// No match along the answer paths is not an error: Call returns "" and the model sees an empty
// observation. Transport failures and non-2xx responses are errors.
type Search struct {
	apiKey   string
	endpoint string
	client   *http.Client
	cache    *lru.Cache[string, string]
	limiter  *rate.Limiter
}

// SearchOption configures a Search tool.
type SearchOption func(*Search)

// WithSearchEndpoint overrides the SerpAPI endpoint. Used by tests and proxies.
func WithSearchEndpoint(endpoint string) SearchOption {
	return func(s *Search) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithSearchHTTPClient sets the HTTP client used for requests.
func WithSearchHTTPClient(client *http.Client) SearchOption {
	return func(s *Search) {
		if client != nil {
			s.client = client
		}
	}
}

// WithSearchCache keeps up to size answers keyed by the trimmed query.
// A size of 0 or less disables the cache.
func WithSearchCache(size int) SearchOption {
	return func(s *Search) {
		if size <= 0 {
			s.cache = nil
			return
		}
		cache, err := lru.New[string, string](size)
		if err != nil {
			return
		}
		s.cache = cache
	}
}

// WithSearchRateLimit caps outgoing requests at rps per second with the given burst.
// Calls wait for a token or fail when their context ends first. rps <= 0 disables the limit.
func WithSearchRateLimit(rps float64, burst int) SearchOption {
	return func(s *Search) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewSearch creates a search tool authenticated with apiKey.
func NewSearch(apiKey string, opts ...SearchOption) *Search {
	s := &Search{
		apiKey:   apiKey,
		endpoint: DefaultSearchEndpoint,
		client:   &http.Client{Timeout: searchTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "search".
func (s *Search) Name() string { return SearchName }

// Description returns the tool description shown to the model.
func (s *Search) Description() string { return searchDescription }

// Call runs the query and returns the first answer found along the fallback chain.
func (s *Search) Call(ctx context.Context, input string) (string, error) {
	query := strings.TrimSpace(input)

	if s.cache != nil {
		if answer, ok := s.cache.Get(query); ok {
			return answer, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("search rate limit: %w", err)
		}
	}

	body, err := s.fetch(ctx, query)
	if err != nil {
		return "", err
	}

	answer := ExtractAnswer(body)

	if s.cache != nil {
		s.cache.Add(query, answer)
	}
	return answer, nil
}

func (s *Search) fetch(ctx context.Context, query string) ([]byte, error) {
	q := url.Values{}
	q.Set("api_key", s.apiKey)
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

// ExtractAnswer applies the answer fallback chain to a SerpAPI JSON response. A body with
// nothing to extract, including one that is not JSON, yields "".
func ExtractAnswer(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range searchAnswerPaths {
		if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Compile-time check that Search implements reagent.Tool.
var _ reagent.Tool = (*Search)(nil)
