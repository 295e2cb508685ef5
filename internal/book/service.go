package book

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service provides catalogue business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalogue service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book in the catalogue.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// Create stores a new book as a reading candidate.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	b := Book{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Author:       in.Author,
		Synopsis:     in.Synopsis,
		Rating:       in.Rating,
		RatingSource: in.RatingSource,
		Category:     defaultIfEmpty(in.Category, DefaultCategory),
		Cover:        in.Cover,
		Resources:    in.Resources,
		AddedBy:      defaultIfEmpty(in.AddedBy, AnonymousUser),
		AddedAt:      time.Now().UTC(),
		Status:       StatusCandidate,
		Votes:        map[string]bool{},
		Reviews:      []Review{},
	}
	if b.Resources == nil {
		b.Resources = []Resource{}
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Update applies a partial update to a book and returns the new state.
func (s *Service) Update(ctx context.Context, id string, upd Update) (Book, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}

	if upd.Title != nil {
		b.Title = *upd.Title
	}
	if upd.Author != nil {
		b.Author = *upd.Author
	}
	if upd.Synopsis != nil {
		b.Synopsis = *upd.Synopsis
	}
	if upd.Rating != nil {
		b.Rating = upd.Rating
	}
	if upd.RatingSource != nil {
		b.RatingSource = *upd.RatingSource
	}
	if upd.Category != nil {
		b.Category = *upd.Category
	}
	if upd.Cover != nil {
		b.Cover = *upd.Cover
	}
	if upd.Status != nil {
		b.Status = *upd.Status
	}

	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Delete removes a book and returns its last state.
func (s *Service) Delete(ctx context.Context, id string) (Book, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Book{}, err
	}
	return b, nil
}

// ToggleVote flips the caller's vote on a book and returns the new state.
func (s *Service) ToggleVote(ctx context.Context, id, userID string) (Book, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}

	user := defaultIfEmpty(userID, AnonymousUser)
	if b.Votes == nil {
		b.Votes = map[string]bool{}
	}
	if b.Votes[user] {
		delete(b.Votes, user)
	} else {
		b.Votes[user] = true
	}

	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// AddReview appends a review to a book.
func (s *Service) AddReview(ctx context.Context, id, userID, content string, rating *float64) (Review, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Review{}, err
	}

	review := Review{
		ID:        uuid.New().String(),
		UserID:    defaultIfEmpty(userID, AnonymousUser),
		Content:   content,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
		Comments:  []Comment{},
	}
	b.Reviews = append(b.Reviews, review)

	if err := s.repo.Update(ctx, &b); err != nil {
		return Review{}, err
	}
	return review, nil
}

// DeleteReview removes a review from a book.
func (s *Service) DeleteReview(ctx context.Context, id, reviewID string) error {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	idx := reviewIndex(b.Reviews, reviewID)
	if idx < 0 {
		return ErrReviewNotFound
	}
	b.Reviews = append(b.Reviews[:idx], b.Reviews[idx+1:]...)

	return s.repo.Update(ctx, &b)
}

// AddComment appends a comment to a review.
func (s *Service) AddComment(ctx context.Context, id, reviewID, userID, content string) (Comment, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Comment{}, err
	}

	idx := reviewIndex(b.Reviews, reviewID)
	if idx < 0 {
		return Comment{}, ErrReviewNotFound
	}

	comment := Comment{
		ID:        uuid.New().String(),
		UserID:    defaultIfEmpty(userID, AnonymousUser),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	b.Reviews[idx].Comments = append(b.Reviews[idx].Comments, comment)

	if err := s.repo.Update(ctx, &b); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment from a review.
func (s *Service) DeleteComment(ctx context.Context, id, reviewID, commentID string) error {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	reviewIdx := reviewIndex(b.Reviews, reviewID)
	if reviewIdx < 0 {
		return ErrReviewNotFound
	}

	comments := b.Reviews[reviewIdx].Comments
	commentIdx := -1
	for i, c := range comments {
		if c.ID == commentID {
			commentIdx = i
			break
		}
	}
	if commentIdx < 0 {
		return ErrCommentNotFound
	}
	b.Reviews[reviewIdx].Comments = append(comments[:commentIdx], comments[commentIdx+1:]...)

	return s.repo.Update(ctx, &b)
}

func reviewIndex(reviews []Review, reviewID string) int {
	for i, r := range reviews {
		if r.ID == reviewID {
			return i
		}
	}
	return -1
}

func defaultIfEmpty(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
