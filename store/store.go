// Package store persists named blobs. The tracker keeps two of them:
// the trade list and the price cache.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Blob keys used by the tracker.
const (
	KeyTrades = "trades"
	KeyPrices = "prices"
)

// ErrNotFound is returned by Get for a key that was never written.
var ErrNotFound = errors.New("store: key not found")

// Store is a key to blob mapping.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the store of the given kind: "sqlite" (path is the database
// file) or "dir" (path is a directory of JSON files).
func Open(kind, path string) (Store, error) {
	switch kind {
	case "sqlite", "":
		return NewSQLite(path)
	case "dir":
		return NewDir(path)
	default:
		return nil, fmt.Errorf("unknown store type %q", kind)
	}
}

// GetJSON decodes the blob at key into v. It reports false, with no error,
// when the key is absent. A blob that fails to decode is an error.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	b, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// PutJSON encodes v and writes it at key.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Put(ctx, key, b)
}
