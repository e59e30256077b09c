// Package kv provides the opaque key/value collaborator used to load and save
// session and store snapshots. Writes are last-writer-wins.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

var ErrUnavailable = errors.New("kv store unavailable")

type Store interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Clear(ctx context.Context, key string) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s when it can be checked, unwrapping prefixed stores.
func Ping(ctx context.Context, s Store) error {
	for {
		p, ok := s.(prefixed)
		if !ok {
			break
		}
		s = p.inner
	}
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Save(ctx, key, b)
}

// LoadJSON decodes the value under key into out. It reports false when the
// key is absent or empty.
func LoadJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	b, ok, err := s.Load(ctx, key)
	if err != nil || !ok || len(b) == 0 {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

type prefixed struct {
	prefix string
	inner  Store
}

// WithPrefix scopes every key of inner under prefix.
func WithPrefix(inner Store, prefix string) Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return inner
	}
	return prefixed{prefix: prefix, inner: inner}
}

func (p prefixed) Save(ctx context.Context, key string, value []byte) error {
	return p.inner.Save(ctx, p.prefix+key, value)
}

func (p prefixed) Load(ctx context.Context, key string) ([]byte, bool, error) {
	return p.inner.Load(ctx, p.prefix+key)
}

func (p prefixed) Clear(ctx context.Context, key string) error {
	return p.inner.Clear(ctx, p.prefix+key)
}
