// Package session holds the identity of one signed-in user and keeps its
// snapshot in the kv collaborator under the "token" and "user" keys.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"jobwise/internal/domain/user"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/pkg/logger"
	"jobwise/internal/usecase/auth"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

type Manager struct {
	backend auth.Backend
	store   kv.Store
	log     *logrus.Entry

	mu      sync.RWMutex
	current user.Session
}

type Option func(*Manager)

func WithLogger(l *logrus.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l.WithField("component", "session")
		}
	}
}

func NewManager(backend auth.Backend, store kv.Store, opts ...Option) *Manager {
	m := &Manager{
		backend: backend,
		store:   store,
		log:     logger.Discard().WithField("component", "session"),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Init restores the persisted session. A missing token or user snapshot
// leaves the session anonymous.
func (m *Manager) Init(ctx context.Context) error {
	restored, err := m.load(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.current = restored
	m.mu.Unlock()

	if restored.Authenticated() {
		m.log.WithField("user_id", restored.User.ID).Debug("session restored")
	}
	return nil
}

func (m *Manager) load(ctx context.Context) (user.Session, error) {
	if m.store == nil {
		return user.Session{}, nil
	}

	tok, ok, err := m.store.Load(ctx, TokenKey)
	if err != nil || !ok || len(tok) == 0 {
		return user.Session{}, err
	}

	var acc user.Account
	ok, err = kv.LoadJSON(ctx, m.store, UserKey, &acc)
	if err != nil || !ok {
		return user.Session{}, err
	}
	return user.Session{Token: string(tok), User: &acc}, nil
}

// Teardown drops the in-memory session and keeps the persisted snapshot, so
// a later Init restores it.
func (m *Manager) Teardown() {
	m.mu.Lock()
	m.current = user.Session{}
	m.mu.Unlock()
}

func (m *Manager) Authenticate(ctx context.Context, email, password string) (user.Session, error) {
	resp, err := m.backend.Authenticate(ctx, email, password)
	if err != nil {
		return user.Session{}, err
	}
	return m.Adopt(ctx, resp)
}

func (m *Manager) Register(ctx context.Context, in auth.RegisterInput) (user.Session, error) {
	resp, err := m.backend.Register(ctx, in)
	if err != nil {
		return user.Session{}, err
	}
	return m.Adopt(ctx, resp)
}

// Adopt makes resp the current session and persists it.
func (m *Manager) Adopt(ctx context.Context, resp auth.Response) (user.Session, error) {
	if resp.SessionToken == "" {
		return user.Session{}, errors.New("session: empty token")
	}

	acc := resp.User
	s := user.Session{Token: resp.SessionToken, User: &acc}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(ctx, TokenKey, []byte(s.Token)); err != nil {
			return user.Session{}, err
		}
		if err := kv.SaveJSON(ctx, m.store, UserKey, acc); err != nil {
			return user.Session{}, err
		}
	}
	m.current = s
	m.log.WithFields(logrus.Fields{"user_id": acc.ID, "role": acc.Role}).Info("session started")
	return copySession(s), nil
}

func (m *Manager) Current() user.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.current)
}

// End clears the session and its snapshot. Ending an anonymous session is a
// no-op.
func (m *Manager) End(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Clear(ctx, TokenKey); err != nil {
			return err
		}
		if err := m.store.Clear(ctx, UserKey); err != nil {
			return err
		}
	}
	if m.current.Authenticated() {
		m.log.WithField("user_id", m.current.User.ID).Info("session ended")
	}
	m.current = user.Session{}
	return nil
}

func (m *Manager) HasRole(role user.Role) bool {
	return user.HasRole(m.Current(), role)
}

func copySession(s user.Session) user.Session {
	if s.User == nil {
		return s
	}
	acc := *s.User
	s.User = &acc
	return s
}
