package search

import (
	"context"
	"strings"
)

// needsEnrichment reports whether a merged candidate is still missing a
// field worth a secondary lookup. The default category counts as missing.
func needsEnrichment(c Candidate) bool {
	return c.Synopsis == "" ||
		c.Cover == "" ||
		c.Rating == nil ||
		c.Category == "" ||
		c.Category == CategoryDefault
}

// enrichCandidate backfills missing fields via best-match lookups against
// the secondary providers. Every step is fill-if-missing and best-effort: a
// failed lookup leaves the candidate exactly as it was, and partial
// progress from earlier steps is kept.
func (s *Service) enrichCandidate(ctx context.Context, c Candidate, queryTitle, queryAuthor string) Candidate {
	title := firstNonEmpty(c.Title, queryTitle)
	author := firstNonEmpty(c.Author, queryAuthor)

	if item := s.googleBooksBestVolume(ctx, title, author); item != nil {
		info := item.VolumeInfo
		if c.Synopsis == "" {
			c.Synopsis = truncateRunes(strings.TrimSpace(info.Description), enrichSynopsisLimit)
		}
		if c.Category == "" || c.Category == CategoryDefault {
			if mapped := mapCategory(firstN(info.Categories, 4)); mapped != CategoryDefault {
				c.Category = mapped
			}
		}
		if c.Cover == "" {
			c.Cover = googleBooksCover(info.ImageLinks)
		}
		if c.Rating == nil && info.AverageRating > 0 {
			c.Rating = ratingPtr(info.AverageRating)
			c.RatingSource = sourceGoogleBooks
		}
		c.Resources = mergeResources(append(c.Resources, buildGoogleBooksResources(*item)...))
	}

	if doc := s.openLibraryBestDoc(ctx, title, author); doc != nil {
		if c.Synopsis == "" && doc.Key != "" {
			c.Synopsis = s.workDescription(ctx, doc.Key)
		}
		if c.Category == "" || c.Category == CategoryDefault {
			if mapped := mapCategory(firstN(doc.Subjects, 6)); mapped != CategoryDefault {
				c.Category = mapped
			}
		}
		if c.Cover == "" && doc.CoverID != 0 {
			c.Cover = openLibraryCoverURL(doc.CoverID)
		}
		if c.Rating == nil && doc.RatingsAverage > 0 {
			c.Rating = ratingPtr(doc.RatingsAverage)
			c.RatingSource = sourceOpenLibrary
		}
		c.Resources = mergeResources(append(c.Resources, buildOpenLibraryResources(*doc)...))
	}

	// CJK titles get one more chance via the scraped source, but only when
	// the cheaper lookups above left a gap.
	if containsCJK(firstNonEmpty(c.Title, queryTitle)) && (c.Rating == nil || !hasRealSynopsis(c.Synopsis)) {
		if meta := s.scrapedMetadata(ctx, firstNonEmpty(c.Title, queryTitle), firstNonEmpty(c.Author, queryAuthor)); meta != nil {
			if !hasRealSynopsis(c.Synopsis) && hasRealSynopsis(meta.Synopsis) {
				c.Synopsis = meta.Synopsis
			}
			if c.Rating == nil && meta.Rating != nil {
				c.Rating = meta.Rating
				c.RatingSource = meta.RatingSource
			}
			c.Resources = mergeResources(append(c.Resources, meta.Resource))
			switch {
			case c.Source == "":
				c.Source = meta.Source
			case !strings.Contains(c.Source, meta.Source):
				c.Source = c.Source + " / " + meta.Source
			}
		}
	}

	if strings.TrimSpace(c.Synopsis) == "" {
		c.Synopsis = placeholderSynopsis(c)
	}
	return c
}
