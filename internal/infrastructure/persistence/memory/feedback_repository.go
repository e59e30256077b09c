package memory

import (
	"context"
	"fmt"
	"sync"

	"jobwise/internal/domain"
	"jobwise/internal/domain/feedback"
)

type FeedbackRepository struct {
	mu    sync.RWMutex
	items []feedback.Entry
}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

func (r *FeedbackRepository) Prepend(_ context.Context, e feedback.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == e.ID {
			return fmt.Errorf("feedback %s already exists", e.ID)
		}
	}
	r.items = append([]feedback.Entry{e}, r.items...)
	return nil
}

func (r *FeedbackRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("feedback %s: %w", id, domain.ErrNotFound)
}

func (r *FeedbackRepository) List(_ context.Context) ([]feedback.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feedback.Entry, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *FeedbackRepository) Reset(_ context.Context, items []feedback.Entry) error {
	cp := make([]feedback.Entry, len(items))
	copy(cp, items)

	r.mu.Lock()
	r.items = cp
	r.mu.Unlock()
	return nil
}
