// Package storage provides the key-value media the finance state is persisted to
// and the adapter that encodes the state under its fixed key.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KV is a durable key-value medium holding opaque blobs.
type KV interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Close releases the medium.
	Close() error
}
