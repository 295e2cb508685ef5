package googlebooks

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
		baseURL:   "https://www.googleapis.com/books/v1",
	}
}

// VolumesResponse matches the volumes list endpoint.
type VolumesResponse struct {
	Items []Volume `json:"items"`
}

type Volume struct {
	VolumeInfo VolumeInfo `json:"volumeInfo"`
	AccessInfo AccessInfo `json:"accessInfo"`
}

type VolumeInfo struct {
	Title         string     `json:"title"`
	Authors       []string   `json:"authors"`
	AverageRating float64    `json:"averageRating"`
	RatingsCount  int        `json:"ratingsCount"`
	Description   string     `json:"description"`
	PublishedDate string     `json:"publishedDate"`
	Categories    []string   `json:"categories"`
	ImageLinks    ImageLinks `json:"imageLinks"`
	InfoLink      string     `json:"infoLink"`
	PreviewLink   string     `json:"previewLink"`
}

type ImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

type AccessInfo struct {
	WebReaderLink string       `json:"webReaderLink"`
	Epub          FormatAccess `json:"epub"`
	PDF           FormatAccess `json:"pdf"`
}

type FormatAccess struct {
	IsAvailable  bool   `json:"isAvailable"`
	AcsTokenLink string `json:"acsTokenLink"`
}

// Search issues an intitle:/inauthor: scoped volume search.
func (c *Client) Search(ctx context.Context, title, author string, maxResults int) (*VolumesResponse, error) {
	parts := []string{"intitle:" + title}
	if author != "" {
		parts = append(parts, "inauthor:"+author)
	}
	return c.query(ctx, strings.Join(parts, " "), maxResults)
}

// Suggest issues an unscoped free-text volume search for autocomplete.
func (c *Client) Suggest(ctx context.Context, query string, maxResults int) (*VolumesResponse, error) {
	return c.query(ctx, query, maxResults)
}

func (c *Client) query(ctx context.Context, q string, maxResults int) (*VolumesResponse, error) {
	u := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d&printType=books",
		c.baseURL, url.QueryEscape(q), maxResults)

	var res VolumesResponse
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	return &res, nil
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
