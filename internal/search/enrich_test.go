package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookclub/internal/platform/douban"
	"bookclub/internal/platform/googlebooks"
	"bookclub/internal/platform/openlibrary"
)

func TestNeedsEnrichment(t *testing.T) {
	rating := 4.0
	complete := Candidate{
		Synopsis: "Something real.",
		Cover:    "c.jpg",
		Rating:   &rating,
		Category: "Technology",
	}
	assert.False(t, needsEnrichment(complete))

	missingSynopsis := complete
	missingSynopsis.Synopsis = ""
	assert.True(t, needsEnrichment(missingSynopsis))

	missingRating := complete
	missingRating.Rating = nil
	assert.True(t, needsEnrichment(missingRating))

	defaultCategory := complete
	defaultCategory.Category = CategoryDefault
	assert.True(t, needsEnrichment(defaultCategory))
}

func TestEnrichCandidate_FillsFromScrapedSource(t *testing.T) {
	service, ol, gb, _, db := newTestService()

	ol.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&openlibrary.SearchResponse{}, nil)
	gb.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&googlebooks.VolumesResponse{}, nil)

	rating := 9.4
	db.On("FetchCandidates", mock.Anything, "活着", "余华").Return([]douban.Book{
		{Title: "活着", Author: "余华", Rating: &rating, Intro: "讲述福贵一生的故事。", URL: "https://book.douban.com/subject/2/"},
	}, nil)

	enriched := service.enrichCandidate(context.Background(),
		Candidate{Title: "活着", Author: "余华", Source: "Open Library"},
		"活着", "余华")

	assert.Equal(t, "讲述福贵一生的故事。", enriched.Synopsis)
	require.NotNil(t, enriched.Rating)
	assert.Equal(t, 9.4, *enriched.Rating)
	assert.Equal(t, "Douban", enriched.RatingSource)
	assert.Equal(t, "Open Library / Douban", enriched.Source)
	require.NotEmpty(t, enriched.Resources)
	assert.Equal(t, "https://book.douban.com/subject/2/", enriched.Resources[0].URL)
}

func TestEnrichCandidate_PlaceholderWhenAllSourcesEmpty(t *testing.T) {
	service, ol, gb, _, _ := newTestService()

	ol.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&openlibrary.SearchResponse{}, nil)
	gb.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&googlebooks.VolumesResponse{}, nil)

	enriched := service.enrichCandidate(context.Background(),
		Candidate{Title: "Obscuria", Author: "Nobody", Source: "Gutendex"},
		"Obscuria", "Nobody")

	assert.False(t, hasRealSynopsis(enriched.Synopsis))
	assert.Contains(t, enriched.Synopsis, "Author: Nobody")
}

func TestEnrichCandidate_GoogleBooksFillsMissingFields(t *testing.T) {
	service, ol, gb, _, _ := newTestService()

	gb.On("Search", mock.Anything, "Dune", "Frank Herbert", bestMatchLimit).Return(&googlebooks.VolumesResponse{
		Items: []googlebooks.Volume{{VolumeInfo: googlebooks.VolumeInfo{
			Title:         "Dune",
			Authors:       []string{"Frank Herbert"},
			Description:   "Paul Atreides comes of age on the desert planet Arrakis.",
			AverageRating: 4.46,
			Categories:    []string{"Science Fiction"},
			ImageLinks:    googlebooks.ImageLinks{Thumbnail: "https://books.google.com/c.jpg"},
		}}},
	}, nil)
	ol.On("Search", mock.Anything, mock.Anything, mock.Anything, bestMatchLimit).Return(&openlibrary.SearchResponse{}, nil)

	enriched := service.enrichCandidate(context.Background(),
		Candidate{Title: "Dune", Author: "Frank Herbert", Source: "Gutendex"},
		"Dune", "Frank Herbert")

	assert.Contains(t, enriched.Synopsis, "Arrakis")
	assert.Equal(t, "Sci-Fi & Fantasy", enriched.Category)
	assert.Equal(t, "https://books.google.com/c.jpg", enriched.Cover)
	require.NotNil(t, enriched.Rating)
	assert.Equal(t, 4.5, *enriched.Rating)
	assert.Equal(t, "Google Books", enriched.RatingSource)
}
