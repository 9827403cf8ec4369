// Package kv provides simple key-value storage backed by bbolt.
// Values are opaque byte slices; callers store JSON documents.
package kv

import (
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

// Store is a bbolt-backed key-value store with named buckets.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the bbolt database file at path.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "technest.kv"
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open key-value store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the storage location for display purposes.
func (s *Store) Path() string {
	return s.db.Path()
}

// Get retrieves a value by key. Returns nil, nil if the bucket or key is missing.
func (s *Store) Get(bucket, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		// bbolt values are only valid inside the transaction.
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Put stores a value by key, creating the bucket if needed.
// The previous value, if any, is overwritten (last writer wins).
func (s *Store) Put(bucket, key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
}

// Delete removes a key. Deleting a missing key is a no-op.
func (s *Store) Delete(bucket, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}
