package application

import "context"

// Repository holds the ordered application records of one owner.
// Implementations keep newest-first insertion order.
type Repository interface {
	Prepend(ctx context.Context, a Application) error
	Replace(ctx context.Context, a Application) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Application, error)
	List(ctx context.Context) ([]Application, error)
	Reset(ctx context.Context, items []Application) error
}
