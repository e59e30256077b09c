package memory

import (
	"context"
	"sync"

	"jobwise/internal/domain/user"
)

// UserDirectory keeps accounts in join order.
type UserDirectory struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]user.Account
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{byID: make(map[string]user.Account)}
}

func (d *UserDirectory) Upsert(_ context.Context, a user.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byID[a.ID]; !ok {
		d.order = append(d.order, a.ID)
	}
	d.byID[a.ID] = a
	return nil
}

func (d *UserDirectory) GetByID(_ context.Context, id string) (user.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	a, ok := d.byID[id]
	if !ok {
		return user.Account{}, user.ErrNotFound
	}
	return a, nil
}

func (d *UserDirectory) List(_ context.Context) ([]user.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]user.Account, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out, nil
}
