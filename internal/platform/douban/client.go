package douban

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// The mobile search page rejects non-browser clients, so the scraper always
// presents a generic browser identity.
const browserUserAgent = "Mozilla/5.0"

// maxSubjects bounds the number of detail pages fetched per search.
const maxSubjects = 5

var (
	subjectIDPattern   = regexp.MustCompile(`href="/book/subject/(\d+)/"`)
	authorFieldPattern = regexp.MustCompile(`作者[:：]\s*([^\n/]+)`)
	horizontalSpaces   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns        = regexp.MustCompile(`\n+`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)
)

type Client struct {
	httpClient    *http.Client
	searchBaseURL string
	bookBaseURL   string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		searchBaseURL: "https://m.douban.com",
		bookBaseURL:   "https://book.douban.com",
	}
}

// Book is the metadata extracted from one subject detail page.
type Book struct {
	Title  string
	Author string
	Rating *float64
	Intro  string
	URL    string
}

// FetchCandidates runs a search and scrapes the top subject detail pages.
// Any network or parse failure fails the whole lookup; the caller memoizes
// that as a negative result.
func (c *Client) FetchCandidates(ctx context.Context, title, author string) ([]Book, error) {
	query := url.QueryEscape(strings.TrimSpace(title + " " + author))
	searchURL := fmt.Sprintf("%s/search/?query=%s&type=book", c.searchBaseURL, query)

	markup, err := c.getHTML(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var books []Book
	for _, id := range extractSubjectIDs(markup) {
		detailURL := fmt.Sprintf("%s/subject/%s/", c.bookBaseURL, id)
		doc, err := c.getDocument(ctx, detailURL)
		if err != nil {
			return nil, err
		}
		books = append(books, parseSubject(doc, detailURL))
	}
	return books, nil
}

// extractSubjectIDs pulls unique subject identifiers from the search page
// markup, in appearance order, capped at maxSubjects.
func extractSubjectIDs(markup string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, match := range subjectIDPattern.FindAllStringSubmatch(markup, -1) {
		id := match[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		if len(ids) == maxSubjects {
			break
		}
	}
	return ids
}

// parseSubject extracts the displayed title, the labeled author field from
// the structured info block, the numeric rating and the longest intro text
// block.
func parseSubject(doc *goquery.Document, detailURL string) Book {
	book := Book{URL: detailURL}

	book.Title = strings.TrimSpace(doc.Find(`span[property="v:itemreviewed"]`).First().Text())

	info := cleanBlockText(doc.Find("#info").First().Text())
	if m := authorFieldPattern.FindStringSubmatch(info); m != nil {
		book.Author = strings.TrimSpace(m[1])
	}

	ratingText := strings.TrimSpace(doc.Find("strong.rating_num").First().Text())
	if rating, err := strconv.ParseFloat(ratingText, 64); err == nil && rating > 0 {
		book.Rating = &rating
	}

	doc.Find("div.intro").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(whitespaceRuns.ReplaceAllString(sel.Text(), " "))
		if len([]rune(text)) > len([]rune(book.Intro)) {
			book.Intro = text
		}
	})

	return book
}

// cleanBlockText collapses horizontal whitespace but keeps line breaks, so
// labeled fields inside the info block stay line-delimited.
func cleanBlockText(s string) string {
	s = horizontalSpaces.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

func (c *Client) getHTML(ctx context.Context, url string) (string, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) getDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp, nil
}
