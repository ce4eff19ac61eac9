// Package kvstore provides the durable key-value storage the product collection
// is mirrored into.
package kvstore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/talkincode/productcards/config"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// Store is a flat string-keyed byte store.
type Store interface {
	// Get returns a copy of the value stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key
	Put(ctx context.Context, key string, value []byte) error

	// Close releases the underlying handle
	Close() error
}

// Open builds the backend selected by cfg.Storage.Type
func Open(cfg *config.AppConfig) (Store, error) {
	st := cfg.Storage
	switch st.Type {
	case "bolt":
		path := cfg.GetStoragePath()
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		return OpenBolt(path, st.Bucket)
	case "sqlite":
		path := cfg.GetStoragePath()
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		return OpenSQLite(path, cfg.System.Debug)
	case "postgres":
		return OpenPostgres(st.Dsn, cfg.System.Debug)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, errors.Errorf("kvstore: unsupported storage type %q", st.Type)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return errors.Wrapf(os.MkdirAll(dir, 0o755), "kvstore: create %s", dir)
}
