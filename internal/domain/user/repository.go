package user

import (
	"context"
	"fmt"

	"jobwise/internal/domain"
)

var ErrNotFound = fmt.Errorf("user %w", domain.ErrNotFound)

// Directory is the set of known accounts, in join order.
type Directory interface {
	Upsert(ctx context.Context, a Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	List(ctx context.Context) ([]Account, error)
}
