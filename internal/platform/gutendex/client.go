package gutendex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

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
		baseURL:   "https://gutendex.com",
	}
}

// BooksResponse matches the /books search endpoint.
type BooksResponse struct {
	Results []Book `json:"results"`
}

type Book struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Authors       []Person          `json:"authors"`
	Subjects      []string          `json:"subjects"`
	Formats       map[string]string `json:"formats"`
	DownloadCount int               `json:"download_count"`
}

type Person struct {
	Name string `json:"name"`
}

// Search issues a free-text search over the public-domain catalogue.
func (c *Client) Search(ctx context.Context, query string) (*BooksResponse, error) {
	u := fmt.Sprintf("%s/books?search=%s", c.baseURL, url.QueryEscape(strings.TrimSpace(query)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var res BooksResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
