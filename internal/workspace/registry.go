// Package workspace hosts one session and one job record store per user,
// each over its own kv namespace, next to the shared feedback store and
// account roster.
package workspace

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"jobwise/internal/domain/application"
	"jobwise/internal/domain/user"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/infrastructure/persistence/memory"
	"jobwise/internal/pkg/logger"
	"jobwise/internal/usecase/auth"
	"jobwise/internal/usecase/jobs"
	"jobwise/internal/usecase/session"
)

// AccountsKey is the kv key holding the roster snapshot.
const AccountsKey = "accounts"

type Workspace struct {
	UserID  string
	Session *session.Manager
	Jobs    *jobs.Service
}

type Registry struct {
	store   kv.Store
	backend auth.Backend
	users   user.Directory
	logger  *logrus.Logger
	log     *logrus.Entry
	now     func() time.Time

	mu      sync.Mutex
	spaces  map[string]*Workspace
	version atomic.Uint64
}

type Option func(*Registry)

func WithLogger(l *logrus.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
			r.log = l.WithField("component", "workspace")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRegistry(store kv.Store, backend auth.Backend, users user.Directory, opts ...Option) *Registry {
	if store == nil {
		store = kv.NewMemory()
	}
	if users == nil {
		users = memory.NewUserDirectory()
	}
	r := &Registry{
		store:   store,
		backend: backend,
		users:   users,
		logger:  logger.Discard(),
		now:     time.Now,
		spaces:  make(map[string]*Workspace),
	}
	r.log = r.logger.WithField("component", "workspace")
	for _, o := range opts {
		o(r)
	}
	return r
}

// Init loads the roster snapshot.
func (r *Registry) Init(ctx context.Context) error {
	var accounts []user.Account
	ok, err := kv.LoadJSON(ctx, r.store, AccountsKey, &accounts)
	if err != nil || !ok {
		return err
	}
	for _, a := range accounts {
		if err := r.users.Upsert(ctx, a); err != nil {
			return err
		}
	}
	r.version.Add(1)
	r.log.WithField("count", len(accounts)).Debug("workspace roster loaded")
	return nil
}

// Teardown drops every in-memory session. Persisted snapshots are kept.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ws := range r.spaces {
		ws.Session.Teardown()
	}
}

func (r *Registry) Login(ctx context.Context, email, password string) (*Workspace, user.Session, error) {
	resp, err := r.backend.Authenticate(ctx, email, password)
	if err != nil {
		return nil, user.Session{}, err
	}
	return r.adopt(ctx, resp)
}

func (r *Registry) Register(ctx context.Context, in auth.RegisterInput) (*Workspace, user.Session, error) {
	resp, err := r.backend.Register(ctx, in)
	if err != nil {
		return nil, user.Session{}, err
	}
	return r.adopt(ctx, resp)
}

func (r *Registry) adopt(ctx context.Context, resp auth.Response) (*Workspace, user.Session, error) {
	acc, err := r.enroll(ctx, resp.User)
	if err != nil {
		return nil, user.Session{}, err
	}
	resp.User = acc

	ws, err := r.Open(ctx, acc.ID)
	if err != nil {
		return nil, user.Session{}, err
	}
	s, err := ws.Session.Adopt(ctx, resp)
	if err != nil {
		return nil, user.Session{}, err
	}
	return ws, s, nil
}

// enroll adds acc to the roster on first sight. A known account keeps its
// join date.
func (r *Registry) enroll(ctx context.Context, acc user.Account) (user.Account, error) {
	known, err := r.users.GetByID(ctx, acc.ID)
	if err == nil {
		acc.JoinDate = known.JoinDate
		return acc, nil
	}

	if acc.JoinDate.IsZero() {
		acc.JoinDate = r.now().UTC()
	}
	if err := r.users.Upsert(ctx, acc); err != nil {
		return user.Account{}, err
	}
	r.version.Add(1)

	all, err := r.users.List(ctx)
	if err == nil {
		err = kv.SaveJSON(ctx, r.store, AccountsKey, all)
	}
	if err != nil {
		r.log.WithError(err).Warn("workspace roster save failed")
	}
	r.log.WithFields(logrus.Fields{"user_id": acc.ID, "role": acc.Role}).Info("workspace account enrolled")
	return acc, nil
}

// Open returns the workspace of userID, restoring it from its namespace on
// first use.
func (r *Registry) Open(ctx context.Context, userID string) (*Workspace, error) {
	if userID == "" {
		return nil, fmt.Errorf("workspace: empty user id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ws, ok := r.spaces[userID]; ok {
		return ws, nil
	}

	ns := kv.WithPrefix(r.store, "users/"+userID+"/")
	ws := &Workspace{
		UserID:  userID,
		Session: session.NewManager(r.backend, ns, session.WithLogger(r.logger)),
		Jobs: jobs.NewService(
			memory.NewApplicationRepository(),
			jobs.WithSnapshotStore(ns),
			jobs.WithLogger(r.logger),
		),
	}
	if err := ws.Session.Init(ctx); err != nil {
		return nil, err
	}
	if err := ws.Jobs.Init(ctx); err != nil {
		return nil, err
	}

	r.spaces[userID] = ws
	r.version.Add(1)
	return ws, nil
}

func (r *Registry) Logout(ctx context.Context, userID string) error {
	ws, err := r.Open(ctx, userID)
	if err != nil {
		return err
	}
	return ws.Session.End(ctx)
}

// Roster lists every account in join order with its live job count.
func (r *Registry) Roster(ctx context.Context) ([]user.Account, error) {
	accounts, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		ws, err := r.Open(ctx, accounts[i].ID)
		if err != nil {
			return nil, err
		}
		items, err := ws.Jobs.List(ctx)
		if err != nil {
			return nil, err
		}
		accounts[i].JobsCount = len(items)
	}
	return accounts, nil
}

// AllApplications collects the records of every account.
func (r *Registry) AllApplications(ctx context.Context) ([]application.Application, error) {
	accounts, err := r.users.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []application.Application
	for _, a := range accounts {
		ws, err := r.Open(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		items, err := ws.Jobs.List(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// Version increases whenever the roster or any workspace's records change.
func (r *Registry) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := r.version.Load()
	for _, ws := range r.spaces {
		v += ws.Jobs.Version()
	}
	return v
}
