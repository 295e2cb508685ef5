package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrReviewNotFound is returned when a review is not found on a book.
var ErrReviewNotFound = errors.New("review not found")

// ErrCommentNotFound is returned when a comment is not found on a review.
var ErrCommentNotFound = errors.New("comment not found")

const (
	// StatusCandidate is the initial status of every added book.
	StatusCandidate = "candidate"

	// DefaultCategory is used when a book is added without one.
	DefaultCategory = "Uncategorized"

	// AnonymousUser stands in when a caller supplies no user name.
	AnonymousUser = "anonymous"
)

// Resource is one reference link stored with a book record.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Comment is a reply on a review.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Review is a member's write-up on a book.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Rating    *float64  `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	Comments  []Comment `json:"comments"`
}

// Book is one reading-club catalogue record, including its votes and
// reviews. Votes map user names to a single toggleable vote.
type Book struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	Synopsis     string          `json:"synopsis"`
	Rating       *float64        `json:"rating"`
	RatingSource string          `json:"ratingSource"`
	Category     string          `json:"category"`
	Cover        string          `json:"cover"`
	Resources    []Resource      `json:"resources"`
	AddedBy      string          `json:"addedBy"`
	AddedAt      time.Time       `json:"addedAt"`
	Status       string          `json:"status"`
	Votes        map[string]bool `json:"votes"`
	Reviews      []Review        `json:"reviews"`
}

// CreateInput carries the caller-supplied fields of a new book.
type CreateInput struct {
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	Synopsis     string     `json:"synopsis"`
	Rating       *float64   `json:"rating"`
	RatingSource string     `json:"ratingSource"`
	Category     string     `json:"category"`
	Cover        string     `json:"cover"`
	Resources    []Resource `json:"resources"`
	AddedBy      string     `json:"addedBy"`
}

// Update carries a partial update; nil fields are left unchanged.
type Update struct {
	Title        *string  `json:"title"`
	Author       *string  `json:"author"`
	Synopsis     *string  `json:"synopsis"`
	Rating       *float64 `json:"rating"`
	RatingSource *string  `json:"ratingSource"`
	Category     *string  `json:"category"`
	Cover        *string  `json:"cover"`
	Status       *string  `json:"status"`
}
