package storage

import (
	"context"
	"errors"
	"fmt"
)

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned for a backend name Open does not know.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Open returns a ready medium for backend. path is the database file for
// sqlite and the directory for file; memory ignores it.
func Open(ctx context.Context, backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		kv, err := NewSQLiteKV(path)
		if err != nil {
			return nil, err
		}
		if err := kv.Migrate(ctx); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return kv, nil
	case BackendFile:
		return NewFileKV(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
