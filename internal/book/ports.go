package book

import (
	"context"
)

// Repository defines the contract for catalogue storage. Votes, reviews
// and comments travel with the book record, so nested mutations go through
// Get followed by Update.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	Create(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id string) error
}
