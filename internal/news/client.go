// Package news provides a client for agriculture headlines from GNews.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://gnews.io/api/v4"

// stateNames expands the two-letter suffix of a county_state value into
// the state name used in search queries.
var stateNames = map[string]string{
	"IA": "Iowa",
	"IL": "Illinois",
	"IN": "Indiana",
	"KS": "Kansas",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MO": "Missouri",
	"ND": "North Dakota",
	"NE": "Nebraska",
	"OH": "Ohio",
	"SD": "South Dakota",
	"WI": "Wisconsin",
}

// Article is one agriculture news item.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

// Client fetches agriculture headlines for a county location.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// New creates a news client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// FarmingNews returns up to three agriculture articles for the county's
// state. A state-specific search that comes back empty falls through to a
// generic agriculture search, then to a static fallback set. Upstream
// failures never propagate; callers always get articles.
func (c *Client) FarmingNews(ctx context.Context, countyState string) []Article {
	query := "agriculture " + stateName(countyState)

	articles, err := c.search(ctx, query)
	if err == nil && len(articles) > 0 {
		return articles
	}

	articles, err = c.search(ctx, "agriculture")
	if err == nil && len(articles) > 0 {
		return articles
	}

	return FallbackArticles()
}

func (c *Client) search(ctx context.Context, query string) ([]Article, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&lang=en&max=3&apikey=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed: %s - %s", resp.Status, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	out := make([]Article, 0, len(result.Articles))
	for _, a := range result.Articles {
		out = append(out, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		})
	}
	return out, nil
}

// stateName extracts the state abbreviation from the last two characters
// of a county_state value and expands it.
func stateName(countyState string) string {
	trimmed := strings.TrimSpace(countyState)
	if len(trimmed) < 2 {
		return trimmed
	}
	abbr := strings.ToUpper(trimmed[len(trimmed)-2:])
	if name, ok := stateNames[abbr]; ok {
		return name
	}
	return abbr
}

// FallbackArticles returns the static article set served when the news
// API is unavailable.
func FallbackArticles() []Article {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Article{
		{
			Title:       "New Irrigation Technology Boosts Farm Production",
			Description: "Smart irrigation systems help farmers in the Midwest reduce water usage while improving crop yields",
			URL:         "https://example.com/agriculture-news/1",
			PublishedAt: now,
			Source:      "Farm Technology Today",
		},
		{
			Title:       "USDA Announces New Support Programs for Small Farms",
			Description: "Federal initiative aims to help family-owned farms compete in the changing agricultural landscape",
			URL:         "https://example.com/agriculture-news/2",
			PublishedAt: now,
			Source:      "Rural Economics Monitor",
		},
		{
			Title:       "Climate-Resilient Crop Varieties Show Promise in Field Tests",
			Description: "New seed varieties developed for drought and heat resistance perform well in Midwest growing conditions",
			URL:         "https://example.com/agriculture-news/3",
			PublishedAt: now,
			Source:      "Agricultural Science Weekly",
		},
	}
}
