package search

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"bookclub/internal/platform/douban"
	"bookclub/internal/platform/googlebooks"
	"bookclub/internal/platform/gutendex"
	"bookclub/internal/platform/openlibrary"
)

// ErrTitleRequired is returned when a search is attempted without a title.
var ErrTitleRequired = errors.New("title is required")

// Per-call-class timeouts. Primary provider calls get the largest budget;
// enrichment lookups sit on the request's critical path and get less.
const (
	providerTimeout   = 7 * time.Second
	bestMatchTimeout  = 6 * time.Second
	suggestTimeout    = 5 * time.Second
	workDetailTimeout = 5 * time.Second
)

const (
	// maxConcurrentProviders bounds the primary fan-out; there are exactly
	// three primary providers and each gets its own worker.
	maxConcurrentProviders = 3

	maxResults     = 8
	maxEnriched    = 6
	maxSuggestions = 10
	suggestLimit   = 8

	minSuggestQueryLen = 2
)

// OpenLibraryClient is the slice of the Open Library API this service
// consumes.
type OpenLibraryClient interface {
	Search(ctx context.Context, title, author string, limit int) (*openlibrary.SearchResponse, error)
	Suggest(ctx context.Context, query string, limit int) (*openlibrary.SearchResponse, error)
	WorkDescription(ctx context.Context, workKey string) (string, error)
}

type GoogleBooksClient interface {
	Search(ctx context.Context, title, author string, maxResults int) (*googlebooks.VolumesResponse, error)
	Suggest(ctx context.Context, query string, maxResults int) (*googlebooks.VolumesResponse, error)
}

type GutendexClient interface {
	Search(ctx context.Context, query string) (*gutendex.BooksResponse, error)
}

type DoubanClient interface {
	FetchCandidates(ctx context.Context, title, author string) ([]douban.Book, error)
}

// Service aggregates the book metadata providers into a single ranked
// search. It owns the scrape cache for the process lifetime.
type Service struct {
	openLibrary OpenLibraryClient
	googleBooks GoogleBooksClient
	gutendex    GutendexClient
	douban      DoubanClient
	scrapeCache ScrapeCache
}

func NewService(ol OpenLibraryClient, gb GoogleBooksClient, gt GutendexClient, db DoubanClient, cache ScrapeCache) *Service {
	return &Service{
		openLibrary: ol,
		googleBooks: gb,
		gutendex:    gt,
		douban:      db,
		scrapeCache: cache,
	}
}

// SearchBookInfo fans out to the primary providers concurrently, merges
// their candidates by dedup key, enriches the eligible prefix and returns
// the ranked public projection. Individual provider failures contribute
// nothing; only a missing title is an error.
func (s *Service) SearchBookInfo(ctx context.Context, title, author string) ([]Result, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}

	adapters := []struct {
		name  string
		fetch func(context.Context, string, string) ([]Candidate, error)
	}{
		{sourceOpenLibrary, s.openLibraryCandidates},
		{sourceGoogleBooks, s.googleBooksCandidates},
		{sourceGutendex, s.gutendexCandidates},
	}

	var (
		mu  sync.Mutex
		all []Candidate
	)
	var g errgroup.Group
	g.SetLimit(maxConcurrentProviders)
	for _, adapter := range adapters {
		g.Go(func() error {
			candidates, err := adapter.fetch(ctx, title, author)
			if err != nil {
				log.Printf("search: %s lookup failed: %v", adapter.name, err)
				return nil
			}
			mu.Lock()
			all = append(all, candidates...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(all) == 0 {
		return []Result{}, nil
	}

	merged := mergeCandidates(all)
	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}

	for i, item := range merged {
		switch {
		case i < maxEnriched && needsEnrichment(item):
			merged[i] = s.enrichCandidate(ctx, item, title, author)
		case item.Synopsis == "" && item.workKey != "":
			// Tail entries skip full enrichment but still get the cheap
			// description-by-key fetch.
			merged[i].Synopsis = s.workDescription(ctx, item.workKey)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		realA, realB := boolRank(hasRealSynopsis(a.Synopsis)), boolRank(hasRealSynopsis(b.Synopsis))
		if realA != realB {
			return realA > realB
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return ratingOrZero(a.Rating) > ratingOrZero(b.Rating)
	})

	results := make([]Result, 0, len(merged))
	for _, item := range merged {
		category := item.Category
		if category == "" {
			category = CategoryDefault
		}
		results = append(results, Result{
			Title:        item.Title,
			Author:       item.Author,
			Synopsis:     item.Synopsis,
			Rating:       item.Rating,
			RatingSource: item.RatingSource,
			Category:     category,
			Cover:        item.Cover,
			Year:         item.Year,
			Source:       item.Source,
			Resources:    appendDiscoveryResources(item.Resources, item.Title, item.Author),
		})
	}
	return results, nil
}

// Autocomplete returns lightweight title suggestions. Providers are tried
// in sequence and each failure is swallowed independently. Queries shorter
// than two characters return nothing without touching the network.
func (s *Service) Autocomplete(ctx context.Context, query string) []Suggestion {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestQueryLen {
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, maxSuggestions)
	seen := make(map[string]bool)

	s.openLibrarySuggestions(ctx, query, seen, &suggestions)
	s.googleBooksSuggestions(ctx, query, seen, &suggestions)

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func (s *Service) openLibrarySuggestions(ctx context.Context, query string, seen map[string]bool, out *[]Suggestion) {
	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	res, err := s.openLibrary.Suggest(ctx, query, suggestLimit)
	if err != nil {
		log.Printf("search: open library suggest failed: %v", err)
		return
	}
	for _, doc := range res.Docs {
		title := strings.TrimSpace(doc.Title)
		if title == "" {
			continue
		}
		author := joinNames(doc.AuthorNames, 2)
		key := normalizeKey(title, author)
		if seen[key] {
			continue
		}
		seen[key] = true
		*out = append(*out, Suggestion{
			Title:  title,
			Author: author,
			Year:   yearPtr(doc.FirstPublishYear),
			Source: sourceOpenLibrary,
		})
	}
}

func (s *Service) googleBooksSuggestions(ctx context.Context, query string, seen map[string]bool, out *[]Suggestion) {
	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	res, err := s.googleBooks.Suggest(ctx, query, suggestLimit)
	if err != nil {
		log.Printf("search: google books suggest failed: %v", err)
		return
	}
	for _, item := range res.Items {
		info := item.VolumeInfo
		title := strings.TrimSpace(info.Title)
		if title == "" {
			continue
		}
		author := joinNames(info.Authors, 2)
		key := normalizeKey(title, author)
		if seen[key] {
			continue
		}
		seen[key] = true
		*out = append(*out, Suggestion{
			Title:  title,
			Author: author,
			Year:   publishedYear(info.PublishedDate),
			Source: sourceGoogleBooks,
		})
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func ratingOrZero(rating *float64) float64 {
	if rating == nil {
		return 0
	}
	return *rating
}
