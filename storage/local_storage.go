package storage

import (
	"fmt"

	"go.etcd.io/bbolt"
)

// LocalStorage is a string key-value store shaped like the browser API it stands in for
type LocalStorage struct {
	db *bbolt.DB
}

// NewLocalStorage wraps an open database created by InitDB
func NewLocalStorage(db *bbolt.DB) *LocalStorage {
	return &LocalStorage{db: db}
}

// GetItem returns the value for key and whether it was set
func (s *LocalStorage) GetItem(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(LocalStorageBucket))
		if b == nil {
			return fmt.Errorf("bucket %s missing", LocalStorageBucket)
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, found, nil
}

// SetItem writes value under key, replacing any previous value
func (s *LocalStorage) SetItem(key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(LocalStorageBucket))
		if b == nil {
			return fmt.Errorf("bucket %s missing", LocalStorageBucket)
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Removing an unset key is not an error.
func (s *LocalStorage) RemoveItem(key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(LocalStorageBucket))
		if b == nil {
			return fmt.Errorf("bucket %s missing", LocalStorageBucket)
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
