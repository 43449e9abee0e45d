// Package store contains entities and key-value storages to persist them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is an error that is returned when the requested key is not found.
var ErrNotFound = errors.New("not found")

// Keys of the values persisted by the application.
const (
	KeyFavorites   = "favorites"
	KeyLastArticle = "lastArticle"
	KeyTheme       = "theme"
)

//go:generate moq -out mock_store.go . Interface

// Interface defines methods for a key-value store.
type Interface interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Storage is a store that holds resources and needs to be closed.
type Storage interface {
	Interface
	io.Closer
}

// Engine is a name of the storage backend.
type Engine string

// Supported engines.
const (
	EngineBolt   Engine = "bolt"
	EngineSQLite Engine = "sqlite"
)

// Open opens the storage of the given engine in the given directory.
func Open(engine Engine, dir string) (Storage, error) {
	switch engine {
	case EngineBolt, "":
		return NewBolt(dir)
	case EngineSQLite:
		return NewSQLite(dir)
	default:
		return nil, fmt.Errorf("unsupported storage engine %q", engine)
	}
}

// GetJSON reads the value under the key and decodes it into v.
func GetJSON(ctx context.Context, s Interface, key string, v any) error {
	bts, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(bts, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}

	return nil
}

// PutJSON encodes v and puts it under the key.
func PutJSON(ctx context.Context, s Interface, key string, v any) error {
	bts, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return s.Put(ctx, key, bts)
}
