package memory

import (
	"context"
	"fmt"
	"sync"

	"jobwise/internal/domain"
	"jobwise/internal/domain/application"
)

type ApplicationRepository struct {
	mu    sync.RWMutex
	items []application.Application
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

func (r *ApplicationRepository) Prepend(_ context.Context, a application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(a.ID) >= 0 {
		return fmt.Errorf("application %s already exists", a.ID)
	}
	r.items = append([]application.Application{a}, r.items...)
	return nil
}

func (r *ApplicationRepository) Replace(_ context.Context, a application.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(a.ID)
	if i < 0 {
		return notFound(a.ID)
	}
	r.items[i] = a
	return nil
}

func (r *ApplicationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return notFound(id)
	}
	r.items = append(r.items[:i:i], r.items[i+1:]...)
	return nil
}

func (r *ApplicationRepository) Get(_ context.Context, id string) (application.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexLocked(id)
	if i < 0 {
		return application.Application{}, notFound(id)
	}
	return r.items[i], nil
}

func (r *ApplicationRepository) List(_ context.Context) ([]application.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]application.Application, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *ApplicationRepository) Reset(_ context.Context, items []application.Application) error {
	cp := make([]application.Application, len(items))
	copy(cp, items)

	r.mu.Lock()
	r.items = cp
	r.mu.Unlock()
	return nil
}

func (r *ApplicationRepository) indexLocked(id string) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) error {
	return fmt.Errorf("application %s: %w", id, domain.ErrNotFound)
}
