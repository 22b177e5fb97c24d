// Package tokenstore provides durable homes for the client's access token.
package tokenstore

import (
	"context"
	"fmt"

	"github.com/wadjakorntonsri/linkshelf/pkg/config"
	"github.com/wadjakorntonsri/linkshelf/pkg/ports"
)

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// Store is a TokenStore that holds resources until closed.
type Store interface {
	ports.TokenStore
	Close() error
}

// New opens the backend named by cfg.SessionBackend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.SessionBackend {
	case "sqlite", "":
		return NewSQLiteStore(cfg.SessionDSN, cfg.SessionKey)
	case "file":
		return NewFileStore(cfg.SessionFile), nil
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.SessionKey)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
