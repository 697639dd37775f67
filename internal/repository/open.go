package repository

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/shekhakhaled/adventureland-tickets/internal/config"
	"github.com/shekhakhaled/adventureland-tickets/internal/database"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var nopCloser = closerFunc(func() error { return nil })

// Open builds the store selected by cfg.Store.Kind. The returned closer
// releases the backend's connections or files and is never nil. For
// config.StoreNone the store is nil and persistence is disabled.
func Open(cfg config.Config) (Store, io.Closer, error) {
	switch cfg.Store.Kind {
	case config.StoreNone:
		return nil, nopCloser, nil
	case config.StoreFile:
		return NewFileStore(cfg.Store.DataDir), nopCloser, nil
	case config.StoreBadger:
		s, err := OpenBadgerStore(filepath.Join(cfg.Store.DataDir, "badger"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.StoreRedis:
		client, err := config.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Store.RedisPrefix), client, nil
	case config.StoreMySQL:
		m := cfg.MySQL
		db, err := database.OpenMySQL(m.User, m.Pass, m.Host, m.Port, m.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mysql: %w", err)
		}
		return NewSQLStore(db, DialectMySQL), db, nil
	case config.StorePostgres:
		db, err := database.OpenPostgres(cfg.Store.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return NewSQLStore(db, DialectPostgres), db, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Store.Kind)
}
