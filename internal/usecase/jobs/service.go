package jobs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobwise/internal/domain/application"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/metrics"
	"jobwise/internal/pkg/logger"
)

// SnapshotKey is the kv key holding the serialized record list.
const SnapshotKey = "applications"

// Service is the job record store of one session. Every mutation validates
// before it writes, so a failed call leaves the records untouched.
type Service struct {
	repo     application.Repository
	snapshot kv.Store
	log      *logrus.Entry
	newID    func() string

	mu      sync.Mutex
	version atomic.Uint64
}

type Option func(*Service)

// WithSnapshotStore makes Init load from and every mutation save to s.
func WithSnapshotStore(s kv.Store) Option {
	return func(svc *Service) { svc.snapshot = s }
}

func WithLogger(l *logrus.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l.WithField("store", "applications")
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

func NewService(repo application.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		log:   logger.Discard().WithField("store", "applications"),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init loads the initial state from the snapshot store, if one is configured
// and holds a snapshot.
func (s *Service) Init(ctx context.Context) error {
	if s.snapshot == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []application.Application
	ok, err := kv.LoadJSON(ctx, s.snapshot, SnapshotKey, &items)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := s.repo.Reset(ctx, items); err != nil {
		return err
	}
	s.version.Add(1)
	s.log.WithField("count", len(items)).Debug("applications snapshot loaded")
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (application.Application, error) {
	a, err := s.create(ctx, in)
	metrics.RecordMutation("applications", "create", err)
	return a, err
}

func (s *Service) create(ctx context.Context, in CreateInput) (application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := in.withDefaults().build(s.newID())
	if err != nil {
		return application.Application{}, err
	}
	if err := s.repo.Prepend(ctx, a); err != nil {
		return application.Application{}, err
	}
	s.changedLocked(ctx)
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (application.Application, error) {
	a, err := s.update(ctx, id, in)
	metrics.RecordMutation("applications", "update", err)
	return a, err
}

func (s *Service) update(ctx context.Context, id string, in UpdateInput) (application.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return application.Application{}, err
	}

	merged, err := in.mergeOver(fromRecord(current)).build(current.ID)
	if err != nil {
		return application.Application{}, err
	}
	if err := s.repo.Replace(ctx, merged); err != nil {
		return application.Application{}, err
	}
	s.changedLocked(ctx)
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.delete(ctx, id)
	metrics.RecordMutation("applications", "delete", err)
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

func (s *Service) Get(ctx context.Context, id string) (application.Application, error) {
	return s.repo.Get(ctx, id)
}

// List returns the records newest-created first. Updates do not reorder.
func (s *Service) List(ctx context.Context) ([]application.Application, error) {
	return s.repo.List(ctx)
}

// Version increases on every successful mutation. Derived data keyed on it
// is never stale.
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
		s.log.WithError(err).Warn("applications snapshot save failed")
	}
}
