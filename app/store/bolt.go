package store

import (
	"context"
	"fmt"
	"path"
	"time"

	bolt "go.etcd.io/bbolt"
)

const kvBktName = "kv"

// Bolt is a storage that uses BoltDB as a backend.
type Bolt struct {
	db *bolt.DB
}

// NewBolt creates new Bolt storage in the given directory.
func NewBolt(dir string) (*Bolt, error) {
	db, err := bolt.Open(path.Join(dir, "newsdesk.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to make boltdb for %s: %w", dir, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(kvBktName)); err != nil {
			return fmt.Errorf("create top-level bucket %s: %w", kvBktName, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("make buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Put puts the value under the key.
func (b *Bolt) Put(_ context.Context, key string, value []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(kvBktName)).Put([]byte(key), value); err != nil {
			return fmt.Errorf("put %s to storage: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}

	return nil
}

// Get returns the value stored under the key.
func (b *Bolt) Get(_ context.Context, key string) (value []byte, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		bts := tx.Bucket([]byte(kvBktName)).Get([]byte(key))
		if bts == nil {
			return ErrNotFound
		}

		// bolt slices are valid only within the transaction
		value = make([]byte, len(bts))
		copy(value, bts)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}

	return value, nil
}

// Delete removes the key from storage.
func (b *Bolt) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(kvBktName)).Delete([]byte(key)); err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}

	return nil
}

// Close closes the storage.
func (b *Bolt) Close() error { return b.db.Close() }
