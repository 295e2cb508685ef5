package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const searchFields = "key,title,author_name,first_publish_year,cover_i,ratings_average,ratings_count,subject,ia,ebook_access"

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
}

func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		userAgent: userAgent,
		baseURL:   "https://openlibrary.org",
	}
}

// SearchResponse matches search.json.
type SearchResponse struct {
	NumFound int   `json:"numFound"`
	Docs     []Doc `json:"docs"`
}

type Doc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int      `json:"cover_i"`
	RatingsAverage   float64  `json:"ratings_average"`
	RatingsCount     int      `json:"ratings_count"`
	Subjects         []string `json:"subject"`
	IA               []string `json:"ia"`
	EbookAccess      string   `json:"ebook_access"`
}

// Search issues a title (and optionally author) scoped search.
func (c *Client) Search(ctx context.Context, title, author string, limit int) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/search.json?title=%s&limit=%d&fields=%s",
		c.baseURL, url.QueryEscape(title), limit, searchFields)
	if author != "" {
		u += "&author=" + url.QueryEscape(author)
	}

	var res SearchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Suggest issues an unscoped free-text search with the minimal field set
// needed for autocomplete.
func (c *Client) Suggest(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	u := fmt.Sprintf("%s/search.json?q=%s&limit=%d&fields=title,author_name,first_publish_year",
		c.baseURL, url.QueryEscape(query), limit)

	var res SearchResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// workResponse matches /works/{key}.json. The description is either a bare
// string or a {type, value} object.
type workResponse struct {
	Description any `json:"description"`
}

// WorkDescription fetches the long description of a work by its opaque key
// (e.g. "/works/OL45883W").
func (c *Client) WorkDescription(ctx context.Context, workKey string) (string, error) {
	if workKey == "" {
		return "", nil
	}
	u := c.baseURL + workKey + ".json"

	var res workResponse
	if err := c.get(ctx, u, &res); err != nil {
		return "", err
	}
	return strings.TrimSpace(formatDescription(res.Description)), nil
}

func formatDescription(desc any) string {
	if s, ok := desc.(string); ok {
		return s
	}
	if m, ok := desc.(map[string]any); ok {
		if v, ok := m["value"].(string); ok {
			return v
		}
	}
	return ""
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}
