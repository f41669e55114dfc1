// Package storage provides string-keyed persistence for leaderboards and settings.
// The default backend is SQLite via the pure-Go modernc.org/sqlite driver;
// Redis and an in-process map are available for shared or throwaway setups.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// KV is a minimal key-value store. Values are opaque strings (JSON documents
// in practice). Implementations must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open picks a backend from dsn:
//
//	redis://host:port/db  Redis
//	memory                in-process map, lost on exit
//	anything else         SQLite database file
func Open(dsn string) (KV, error) {
	switch {
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return OpenRedis(dsn)
	case dsn == "memory" || dsn == ":memory:":
		return NewMemory(), nil
	default:
		return OpenSQLite(dsn)
	}
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}
