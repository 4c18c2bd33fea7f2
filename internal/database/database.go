// Package database holds the key/value backends that persist the tracker's
// lists. Every backend stores opaque byte values under string keys.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tomlord1122/assignment-tracker/internal/env"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is a synchronous string-keyed persistent store. Put overwrites any
// previous value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Service is a Store with lifecycle and health reporting.
type Service interface {
	Store
	Health() map[string]string
	Close() error
}

// New opens the backend named by cfg.Backend.
func New(cfg env.StoreConfig, logger *slog.Logger) (Service, error) {
	logger.Info("opening store", "backend", cfg.Backend)

	var (
		svc Service
		err error
	)
	switch cfg.Backend {
	case env.BackendBolt:
		svc, err = asService(NewBolt(cfg.BoltPath))
	case env.BackendPostgres:
		svc, err = asService(OpenPostgres(cfg.Postgres.DSN()))
	case env.BackendMySQL:
		svc, err = asService(OpenMySQL(MySQLDSN(cfg.MySQL)))
	case env.BackendRedis:
		svc, err = asService(NewRedis(cfg.Redis))
	case env.BackendMemory:
		svc = NewMemory()
	default:
		err = fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// asService keeps a typed nil pointer from escaping as a non-nil Service.
func asService[S Service](s S, err error) (Service, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
