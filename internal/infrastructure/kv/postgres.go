package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobwise/internal/database"
)

// Postgres stores values in the kv_store table created by migration V1.
type Postgres struct {
	db  database.DB
	now func() time.Time
}

func NewPostgres(db database.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.db == nil {
		return ErrUnavailable
	}
	return p.db.Ping(ctx)
}

func (p *Postgres) Save(ctx context.Context, key string, value []byte) error {
	if p == nil || p.db == nil {
		return ErrUnavailable
	}
	_, err := p.db.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, p.now().UTC(),
	)
	return err
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if p == nil || p.db == nil {
		return nil, false, ErrUnavailable
	}
	var value []byte
	row := p.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (p *Postgres) Clear(ctx context.Context, key string) error {
	if p == nil || p.db == nil {
		return ErrUnavailable
	}
	_, err := p.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	return err
}
