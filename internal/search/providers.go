package search

import (
	"context"
	"log"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"bookclub/internal/platform/googlebooks"
	"bookclub/internal/platform/gutendex"
	"bookclub/internal/platform/openlibrary"
)

// Provider display names. These feed the source/sources fields and the
// dedup of the source string, so they must stay stable.
const (
	sourceOpenLibrary = "Open Library"
	sourceGoogleBooks = "Google Books"
	sourceGutendex    = "Gutendex"
	sourceDouban      = "Douban"
)

const (
	candidateLimit = 12
	bestMatchLimit = 10
)

// Synopsis budgets per path. Primary results stay short; enrichment may
// spend a little more; the scraped source is the most generous because it
// is often the only synopsis a CJK title gets.
const (
	primarySynopsisLimit = 260
	enrichSynopsisLimit  = 320
	workSynopsisLimit    = 260
	scrapedSynopsisLimit = 420
)

// scrapedAcceptThreshold rejects weak scraped matches; anything below it is
// memoized as a miss so the query never hits the network again.
const scrapedAcceptThreshold = 30

func (s *Service) openLibraryCandidates(ctx context.Context, title, author string) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	res, err := s.openLibrary.Search(ctx, title, author, candidateLimit)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(res.Docs))
	for _, doc := range res.Docs {
		bookAuthor := joinNames(doc.AuthorNames, 2)

		score := scoreMatch(title, author, doc.Title, bookAuthor)
		if doc.RatingsAverage > 0 {
			score += 8
		}
		if doc.RatingsCount > 0 {
			score += min(12, doc.RatingsCount/40)
		}
		if doc.CoverID != 0 {
			score += 5
		}
		if doc.FirstPublishYear != 0 {
			score += 2
		}

		cover := ""
		if doc.CoverID != 0 {
			cover = openLibraryCoverURL(doc.CoverID)
		}

		out = append(out, Candidate{
			Title:        doc.Title,
			Author:       bookAuthor,
			Synopsis:     "",
			Rating:       ratingPtr(doc.RatingsAverage),
			RatingSource: ratingSource(doc.RatingsAverage, sourceOpenLibrary),
			Category:     mapCategory(firstN(doc.Subjects, 5)),
			Cover:        cover,
			Year:         yearPtr(doc.FirstPublishYear),
			Source:       sourceOpenLibrary,
			Resources:    buildOpenLibraryResources(doc),
			score:        score,
			workKey:      doc.Key,
		})
	}
	return out, nil
}

func (s *Service) googleBooksCandidates(ctx context.Context, title, author string) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	res, err := s.googleBooks.Search(ctx, title, author, candidateLimit)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(res.Items))
	for _, item := range res.Items {
		info := item.VolumeInfo
		bookAuthor := joinNames(info.Authors, 2)

		score := scoreMatch(title, author, info.Title, bookAuthor)
		if info.AverageRating > 0 {
			score += 7
		}
		if info.RatingsCount > 0 {
			score += min(10, info.RatingsCount/50)
		}
		if info.Description != "" {
			score += 4
		}
		if info.ImageLinks.Thumbnail != "" {
			score += 3
		}

		out = append(out, Candidate{
			Title:        info.Title,
			Author:       bookAuthor,
			Synopsis:     truncateRunes(strings.TrimSpace(info.Description), primarySynopsisLimit),
			Rating:       ratingPtr(info.AverageRating),
			RatingSource: ratingSource(info.AverageRating, sourceGoogleBooks),
			Category:     mapCategory(firstN(info.Categories, 3)),
			Cover:        googleBooksCover(info.ImageLinks),
			Year:         publishedYear(info.PublishedDate),
			Source:       sourceGoogleBooks,
			Resources:    buildGoogleBooksResources(item),
			score:        score,
		})
	}
	return out, nil
}

func (s *Service) gutendexCandidates(ctx context.Context, title, author string) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	res, err := s.gutendex.Search(ctx, strings.TrimSpace(title+" "+author))
	if err != nil {
		return nil, err
	}

	books := res.Results
	if len(books) > candidateLimit {
		books = books[:candidateLimit]
	}

	out := make([]Candidate, 0, len(books))
	for _, book := range books {
		bookAuthor := joinPersonNames(book.Authors, 2)

		score := scoreMatch(title, author, book.Title, bookAuthor)
		if book.DownloadCount > 0 {
			score += min(8, book.DownloadCount/200)
		}

		subjects := firstN(book.Subjects, 4)
		synopsis := ""
		if len(subjects) > 0 {
			synopsis = "Subjects: " + strings.Join(firstN(subjects, 3), " / ")
		}

		out = append(out, Candidate{
			Title:     book.Title,
			Author:    bookAuthor,
			Synopsis:  synopsis,
			Category:  mapCategory(subjects),
			Source:    sourceGutendex,
			Resources: buildGutendexResources(book),
			score:     score,
		})
	}
	return out, nil
}

// openLibraryBestDoc returns the single highest-scoring document for an
// enrichment lookup, or nil when the provider has nothing usable.
func (s *Service) openLibraryBestDoc(ctx context.Context, title, author string) *openlibrary.Doc {
	ctx, cancel := context.WithTimeout(ctx, bestMatchTimeout)
	defer cancel()

	res, err := s.openLibrary.Search(ctx, title, author, bestMatchLimit)
	if err != nil {
		log.Printf("search: open library best-match lookup failed: %v", err)
		return nil
	}

	var best *openlibrary.Doc
	bestScore := -1
	for i := range res.Docs {
		doc := &res.Docs[i]
		score := scoreMatch(title, author, doc.Title, joinNames(doc.AuthorNames, 2))
		if doc.RatingsAverage > 0 {
			score += 4
		}
		if doc.CoverID != 0 {
			score += 2
		}
		if score > bestScore {
			bestScore = score
			best = doc
		}
	}
	return best
}

// googleBooksBestVolume returns the single highest-scoring volume for an
// enrichment lookup, or nil when the provider has nothing usable.
func (s *Service) googleBooksBestVolume(ctx context.Context, title, author string) *googlebooks.Volume {
	ctx, cancel := context.WithTimeout(ctx, bestMatchTimeout)
	defer cancel()

	res, err := s.googleBooks.Search(ctx, title, author, bestMatchLimit)
	if err != nil {
		log.Printf("search: google books best-match lookup failed: %v", err)
		return nil
	}

	var best *googlebooks.Volume
	bestScore := -1
	for i := range res.Items {
		item := &res.Items[i]
		info := item.VolumeInfo
		score := scoreMatch(title, author, info.Title, joinNames(info.Authors, 2))
		if info.Description != "" {
			score += 5
		}
		if info.ImageLinks.Thumbnail != "" {
			score += 2
		}
		if info.AverageRating > 0 {
			score += 2
		}
		if score > bestScore {
			bestScore = score
			best = item
		}
	}
	return best
}

// workDescription backfills a synopsis from the work detail endpoint.
// Failures degrade to an empty string.
func (s *Service) workDescription(ctx context.Context, workKey string) string {
	ctx, cancel := context.WithTimeout(ctx, workDetailTimeout)
	defer cancel()

	desc, err := s.openLibrary.WorkDescription(ctx, workKey)
	if err != nil {
		log.Printf("search: work description fetch failed for %s: %v", workKey, err)
		return ""
	}
	return truncateRunes(desc, workSynopsisLimit)
}

// scrapedMetadata returns the best scraped match for a CJK query,
// memoizing both hits and misses under the normalized key.
func (s *Service) scrapedMetadata(ctx context.Context, title, author string) *ScrapedMeta {
	key := normalizeKey(title, author)
	if meta, ok := s.scrapeCache.Get(key); ok {
		return meta
	}

	books, err := s.douban.FetchCandidates(ctx, title, author)
	if err != nil {
		log.Printf("search: scraped lookup failed: %v", err)
		s.scrapeCache.Put(key, nil)
		return nil
	}

	var best *ScrapedMeta
	bestScore := -1
	for _, book := range books {
		score := scoreMatch(title, author, book.Title, book.Author)
		if book.Rating != nil {
			score += 6
		}
		intro := truncateRunes(book.Intro, scrapedSynopsisLimit)
		if intro != "" {
			score += 8
		}

		if score > bestScore {
			bestScore = score
			best = &ScrapedMeta{
				Title:        book.Title,
				Author:       book.Author,
				Synopsis:     intro,
				Rating:       roundedRating(book.Rating),
				RatingSource: scrapedRatingSource(book.Rating),
				Source:       sourceDouban,
				Resource: Resource{
					Name: "Douban page",
					URL:  book.URL,
					Type: ResourceDetail,
				},
			}
		}
	}

	if bestScore < scrapedAcceptThreshold {
		s.scrapeCache.Put(key, nil)
		return nil
	}
	s.scrapeCache.Put(key, best)
	return best
}

func buildOpenLibraryResources(doc openlibrary.Doc) []Resource {
	var resources []Resource
	query := urlQuery(doc.Title, joinNames(doc.AuthorNames, 1))

	if doc.Key != "" {
		resources = append(resources, Resource{
			Name: "Open Library page",
			URL:  "https://openlibrary.org" + doc.Key,
			Type: ResourceDetail,
		})
	}
	if len(doc.IA) > 0 {
		resources = append(resources, Resource{
			Name: "Internet Archive borrow/preview",
			URL:  "https://archive.org/details/" + doc.IA[0],
			Type: ResourceBorrow,
		})
	}
	switch doc.EbookAccess {
	case "public", "borrowable", "printdisabled":
		if doc.Key != "" {
			resources = append(resources, Resource{
				Name: "Open Library ebook entry",
				URL:  "https://openlibrary.org" + doc.Key,
				Type: ResourceEbook,
			})
		}
	}
	resources = append(resources, Resource{
		Name: "Google Books search",
		URL:  "https://books.google.com/books?q=" + query,
		Type: ResourceSearch,
	})
	return mergeResources(resources)
}

func buildGoogleBooksResources(item googlebooks.Volume) []Resource {
	info := item.VolumeInfo
	access := item.AccessInfo
	var resources []Resource

	if info.InfoLink != "" {
		resources = append(resources, Resource{Name: "Google Books page", URL: info.InfoLink, Type: ResourceDetail})
	}
	if info.PreviewLink != "" {
		resources = append(resources, Resource{Name: "Google Books preview", URL: info.PreviewLink, Type: ResourcePreview})
	}
	if access.WebReaderLink != "" {
		resources = append(resources, Resource{Name: "Google Web Reader", URL: access.WebReaderLink, Type: ResourceOnlineRead})
	}
	if access.Epub.IsAvailable && access.Epub.AcsTokenLink != "" {
		resources = append(resources, Resource{Name: "Google EPUB download", URL: access.Epub.AcsTokenLink, Type: ResourceEbook})
	}
	if access.PDF.IsAvailable && access.PDF.AcsTokenLink != "" {
		resources = append(resources, Resource{Name: "Google PDF download", URL: access.PDF.AcsTokenLink, Type: ResourceEbook})
	}
	return mergeResources(resources)
}

func buildGutendexResources(book gutendex.Book) []Resource {
	var resources []Resource

	// Map iteration order is random; sort the format keys so the produced
	// links are deterministic.
	formats := make([]string, 0, len(book.Formats))
	for format := range book.Formats {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	for _, format := range formats {
		link := book.Formats[format]
		if link == "" || strings.HasSuffix(link, ".zip") {
			continue
		}
		switch {
		case strings.Contains(format, "text/html"):
			resources = append(resources, Resource{Name: "Project Gutenberg online reading", URL: link, Type: ResourceOnlineRead})
		case strings.Contains(format, "application/epub+zip"):
			resources = append(resources, Resource{Name: "Project Gutenberg EPUB", URL: link, Type: ResourceEbook})
		case strings.Contains(format, "application/pdf"):
			resources = append(resources, Resource{Name: "Project Gutenberg PDF", URL: link, Type: ResourceEbook})
		}
	}

	if book.ID != 0 {
		resources = append(resources, Resource{
			Name: "Gutendex details",
			URL:  "https://gutendex.com/books/" + strconv.Itoa(book.ID),
			Type: ResourceDetail,
		})
	}
	return mergeResources(resources)
}

func openLibraryCoverURL(coverID int) string {
	return "https://covers.openlibrary.org/b/id/" + strconv.Itoa(coverID) + "-M.jpg"
}

func googleBooksCover(links googlebooks.ImageLinks) string {
	cover := links.Thumbnail
	if cover == "" {
		cover = links.SmallThumbnail
	}
	if strings.HasPrefix(cover, "http://") {
		cover = "https://" + strings.TrimPrefix(cover, "http://")
	}
	return cover
}

func joinNames(names []string, max int) string {
	if len(names) > max {
		names = names[:max]
	}
	return strings.Join(names, ", ")
}

func joinPersonNames(people []gutendex.Person, max int) string {
	var names []string
	for _, p := range people {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return joinNames(names, max)
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func publishedYear(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return nil
	}
	return &year
}

func yearPtr(year int) *int {
	if year == 0 {
		return nil
	}
	return &year
}

// ratingPtr rounds a provider rating to one decimal; zero means absent.
func ratingPtr(value float64) *float64 {
	if value <= 0 {
		return nil
	}
	rounded := math.Round(value*10) / 10
	return &rounded
}

func roundedRating(value *float64) *float64 {
	if value == nil {
		return nil
	}
	return ratingPtr(*value)
}

func ratingSource(value float64, source string) string {
	if value <= 0 {
		return ""
	}
	return source
}

func scrapedRatingSource(value *float64) string {
	if value == nil {
		return ""
	}
	return sourceDouban
}

func urlQuery(title, author string) string {
	return url.QueryEscape(strings.TrimSpace(title + " " + author))
}
