package feedbacks

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobwise/internal/domain/feedback"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/metrics"
	"jobwise/internal/pkg/logger"
	"jobwise/internal/pkg/validation"
)

const SnapshotKey = "feedback"

// SubmitInput is a feedback form. Name and Email are optional.
type SubmitInput struct {
	Name     string `json:"name" validate:"max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Feedback string `json:"feedback" validate:"required"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
}

type Service struct {
	repo     feedback.Repository
	snapshot kv.Store
	log      *logrus.Entry
	newID    func() string
	now      func() time.Time

	mu      sync.Mutex
	version atomic.Uint64
}

type Option func(*Service)

func WithSnapshotStore(s kv.Store) Option {
	return func(svc *Service) { svc.snapshot = s }
}

func WithLogger(l *logrus.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l.WithField("store", "feedback")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		if now != nil {
			svc.now = now
		}
	}
}

func WithIDGenerator(f func() string) Option {
	return func(svc *Service) {
		if f != nil {
			svc.newID = f
		}
	}
}

func NewService(repo feedback.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		log:   logger.Discard().WithField("store", "feedback"),
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Init(ctx context.Context) error {
	if s.snapshot == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []feedback.Entry
	ok, err := kv.LoadJSON(ctx, s.snapshot, SnapshotKey, &items)
	if err != nil || !ok {
		return err
	}
	if err := s.repo.Reset(ctx, items); err != nil {
		return err
	}
	s.version.Add(1)
	return nil
}

// Submit validates in and stores it with a fresh id and the current time.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (feedback.Entry, error) {
	e, err := s.submit(ctx, in)
	metrics.RecordMutation("feedback", "submit", err)
	return e, err
}

func (s *Service) submit(ctx context.Context, in SubmitInput) (feedback.Entry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Feedback = strings.TrimSpace(in.Feedback)
	if err := validation.Struct(in); err != nil {
		return feedback.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return feedback.Entry{}, err
	}
	e := feedback.Entry{
		ID:       s.newID(),
		Name:     in.Name,
		Email:    in.Email,
		Feedback: in.Feedback,
		Rating:   in.Rating,
		Date:     s.now().UTC(),
	}
	if err := s.repo.Prepend(ctx, e); err != nil {
		return feedback.Entry{}, err
	}
	s.changedLocked(ctx)
	return e, nil
}

// List returns entries newest-first.
func (s *Service) List(ctx context.Context) ([]feedback.Entry, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.delete(ctx, id)
	metrics.RecordMutation("feedback", "delete", err)
	return err
}

func (s *Service) delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changedLocked(ctx)
	return nil
}

func (s *Service) Version() uint64 {
	return s.version.Load()
}

func (s *Service) changedLocked(ctx context.Context) {
	s.version.Add(1)
	if s.snapshot == nil {
		return
	}

	items, err := s.repo.List(ctx)
	if err == nil {
		err = kv.SaveJSON(ctx, s.snapshot, SnapshotKey, items)
	}
	if err != nil {
		s.log.WithError(err).Warn("feedback snapshot save failed")
	}
}
