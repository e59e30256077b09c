package feedback

import "context"

// Repository keeps entries newest-first.
type Repository interface {
	Prepend(ctx context.Context, e Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Entry, error)
	Reset(ctx context.Context, items []Entry) error
}
