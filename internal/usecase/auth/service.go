package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"jobwise/internal/domain"
	"jobwise/internal/domain/user"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/metrics"
	"jobwise/internal/pkg/jwt"
	"jobwise/internal/pkg/logger"
	"jobwise/internal/pkg/validation"
)

// CredentialsKey is the kv key holding registered credentials.
const CredentialsKey = "credentials"

var ErrEmailAlreadyRegistered = domain.NewValidationError("email", "email is already registered")

// Response is what a backend hands back for a successful login or sign-up.
type Response struct {
	SessionToken string       `json:"sessionToken"`
	User         user.Account `json:"user"`
}

// Backend authenticates users. Calls block until the backend answers or ctx
// is done.
type Backend interface {
	Authenticate(ctx context.Context, email, password string) (Response, error)
	Register(ctx context.Context, in RegisterInput) (Response, error)
}

type RegisterInput struct {
	Name     string    `json:"name" validate:"required,max=200"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"required,min=6"`
	Role     user.Role `json:"role" validate:"omitempty,oneof=applicant admin"`
}

type credential struct {
	Account user.Account `json:"account"`
	Hash    []byte       `json:"hash"`
}

// demoAccounts are the fixed logins of the stand-in backend.
var demoAccounts = []struct {
	account  user.Account
	password string
}{
	{user.Account{ID: "1", Name: "Admin", Email: "admin@jobwise.com", Role: user.RoleAdmin}, "admin123"},
	{user.Account{ID: "2", Name: "User", Email: "user@jobwise.com", Role: user.RoleApplicant}, "user123"},
}

// Service is the in-process stand-in backend. The demo accounts are fixed;
// registered accounts are kept with bcrypt hashes.
type Service struct {
	tokens   jwt.Service
	snapshot kv.Store
	log      *logrus.Entry
	latency  time.Duration
	now      func() time.Time
	newID    func() string

	mu    sync.Mutex
	creds map[string]credential
}

var _ Backend = (*Service)(nil)

type Option func(*Service)

// WithLatency delays every call by d, as a network round-trip would.
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// WithSnapshotStore makes registered credentials survive restarts.
func WithSnapshotStore(st kv.Store) Option {
	return func(s *Service) { s.snapshot = st }
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l.WithField("component", "auth")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(f func() string) Option {
	return func(s *Service) {
		if f != nil {
			s.newID = f
		}
	}
}

func NewService(tokens jwt.Service, opts ...Option) *Service {
	s := &Service{
		tokens: tokens,
		log:    logger.Discard().WithField("component", "auth"),
		now:    time.Now,
		newID:  uuid.NewString,
		creds:  make(map[string]credential),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init loads registered credentials from the snapshot store.
func (s *Service) Init(ctx context.Context) error {
	if s.snapshot == nil {
		return nil
	}

	var stored []credential
	ok, err := kv.LoadJSON(ctx, s.snapshot, CredentialsKey, &stored)
	if err != nil || !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range stored {
		s.creds[normalizeEmail(c.Account.Email)] = c
	}
	s.log.WithField("count", len(stored)).Debug("auth credentials loaded")
	return nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (Response, error) {
	resp, err := s.authenticate(ctx, email, password)
	metrics.RecordAuthAttempt("login", err)
	return resp, err
}

func (s *Service) authenticate(ctx context.Context, email, password string) (Response, error) {
	if err := s.wait(ctx); err != nil {
		return Response{}, err
	}

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Response{}, domain.ErrInvalidCredentials
	}

	for _, d := range demoAccounts {
		if d.account.Email == email && d.password == password {
			return s.issue(d.account)
		}
	}

	s.mu.Lock()
	c, ok := s.creds[email]
	s.mu.Unlock()
	if !ok {
		return Response{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.Hash, []byte(password)); err != nil {
		return Response{}, domain.ErrInvalidCredentials
	}
	return s.issue(c.Account)
}

// Register creates an account. An empty role means applicant.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Response, error) {
	resp, err := s.register(ctx, in)
	metrics.RecordAuthAttempt("register", err)
	return resp, err
}

func (s *Service) register(ctx context.Context, in RegisterInput) (Response, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Role = user.Role(strings.ToLower(strings.TrimSpace(string(in.Role))))
	if in.Role == "" {
		in.Role = user.RoleApplicant
	}
	if err := validation.Struct(in); err != nil {
		return Response{}, err
	}

	if err := s.wait(ctx); err != nil {
		return Response{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Response{}, err
	}

	s.mu.Lock()
	if _, taken := s.creds[in.Email]; taken || isDemoEmail(in.Email) {
		s.mu.Unlock()
		return Response{}, ErrEmailAlreadyRegistered
	}
	acc := user.Account{
		ID:       s.newID(),
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		JoinDate: s.now().UTC(),
	}
	s.creds[in.Email] = credential{Account: acc, Hash: hash}
	stored := s.snapshotLocked()
	s.mu.Unlock()

	if s.snapshot != nil {
		if err := kv.SaveJSON(ctx, s.snapshot, CredentialsKey, stored); err != nil {
			s.log.WithError(err).Warn("auth credentials save failed")
		}
	}
	s.log.WithFields(logrus.Fields{"user_id": acc.ID, "role": acc.Role}).Info("auth account registered")
	return s.issue(acc)
}

func (s *Service) issue(acc user.Account) (Response, error) {
	tok, err := s.tokens.GenerateSessionToken(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		return Response{}, err
	}
	return Response{SessionToken: tok, User: acc}, nil
}

func (s *Service) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.latency <= 0 {
		return nil
	}

	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) snapshotLocked() []credential {
	out := make([]credential, 0, len(s.creds))
	for _, c := range s.creds {
		out = append(out, c)
	}
	return out
}

func isDemoEmail(email string) bool {
	for _, d := range demoAccounts {
		if d.account.Email == email {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsCanceled reports whether err came from the caller giving up.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
