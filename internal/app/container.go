package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"jobwise/internal/config"
	"jobwise/internal/database"
	"jobwise/internal/database/migration"
	dbpostgres "jobwise/internal/database/postgres"
	"jobwise/internal/infrastructure/kv"
	"jobwise/internal/infrastructure/persistence/memory"
	"jobwise/internal/pkg/jwt"
	"jobwise/internal/usecase/analytics"
	"jobwise/internal/usecase/auth"
	"jobwise/internal/usecase/feedbacks"
	"jobwise/internal/workspace"
)

// Container owns the long-lived services of one process.
type Container struct {
	Config     config.Config
	Logger     *logrus.Logger
	DB         database.DB
	Store      kv.Store
	JWT        jwt.Service
	Auth       *auth.Service
	Workspaces *workspace.Registry
	Feedback   *feedbacks.Service
	Analytics  *analytics.Service

	closers []func() error
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	store, err := c.openStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Store = store

	if err := c.wire(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) openStore(ctx context.Context) (kv.Store, error) {
	switch c.Config.Storage.Driver {
	case config.StorageRedis:
		r, err := kv.NewRedis(ctx, c.Config.Redis, c.Logger)
		if err != nil {
			if errors.Is(err, kv.ErrUnavailable) {
				c.Logger.WithError(err).Warn("storage redis unavailable, falling back to memory")
				return kv.NewMemory(), nil
			}
			return nil, err
		}
		c.closers = append(c.closers, r.Close)
		return r, nil

	case config.StoragePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		db, err := dbpostgres.Connect(connectCtx, c.Config.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.DB = db
		c.closers = append(c.closers, db.Close)

		if err := Migrate(ctx, c.Config.Database, db, c.Logger); err != nil {
			return nil, err
		}
		return kv.NewPostgres(db), nil

	default:
		return kv.NewMemory(), nil
	}
}

func (c *Container) wire(ctx context.Context) error {
	c.JWT = jwt.NewHMACService(c.Config.JWT.Secret, c.Config.JWT.ExpiresIn)

	c.Auth = auth.NewService(c.JWT,
		auth.WithLatency(c.Config.Auth.SimulatedLatency),
		auth.WithSnapshotStore(c.Store),
		auth.WithLogger(c.Logger),
	)
	if err := c.Auth.Init(ctx); err != nil {
		return fmt.Errorf("restore credentials: %w", err)
	}

	c.Workspaces = workspace.NewRegistry(c.Store, c.Auth, memory.NewUserDirectory(), workspace.WithLogger(c.Logger))
	if err := c.Workspaces.Init(ctx); err != nil {
		return fmt.Errorf("restore roster: %w", err)
	}

	c.Feedback = feedbacks.NewService(memory.NewFeedbackRepository(),
		feedbacks.WithSnapshotStore(c.Store),
		feedbacks.WithLogger(c.Logger),
	)
	if err := c.Feedback.Init(ctx); err != nil {
		return fmt.Errorf("restore feedback: %w", err)
	}

	period, err := analytics.ParsePeriod(c.Config.Analytics.GrowthPeriod)
	if err != nil {
		return fmt.Errorf("analytics growth period: %w", err)
	}
	cache, err := analytics.NewCache(c.Config.Analytics.CacheSize)
	if err != nil {
		return err
	}
	c.Analytics = analytics.NewService(cache, period)
	return nil
}

// Close tears down sessions and releases connections in reverse order.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Workspaces != nil {
		c.Workspaces.Teardown()
	}

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// Migrate applies pending schema migrations to db.
func Migrate(ctx context.Context, cfg config.DatabaseConfig, db database.DB, logger *logrus.Logger) error {
	applied, err := migration.Runner{Dir: cfg.MigrationsDir}.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, m := range applied {
		logger.WithFields(logrus.Fields{"version": m.Version, "name": m.Name}).Info("migration applied")
	}
	return nil
}
