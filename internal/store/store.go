package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketPreferences = []byte("preferences")
)

// Preference keys
const (
	keyTheme = "theme"
)

// PreferenceStore implements domain.PreferenceStore using BoltDB.
type PreferenceStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

var _ domain.PreferenceStore = (*PreferenceStore)(nil)

// Open opens the preference database inside dir. An empty dir gives a
// memory-only store that forgets everything on exit.
func Open(dir string) (*PreferenceStore, error) {
	if dir == "" {
		return &PreferenceStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "prefs.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PreferenceStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the raw value stored under key
func (s *PreferenceStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data, true
}

// Set stores value under key. The memory cache is only updated once the
// write has reached disk so a failed write never masks the stored value.
func (s *PreferenceStore) Set(key string, value []byte) error {
	data := make([]byte, len(value))
	copy(data, value)

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPreferences)
			return b.Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return nil
}

// Delete removes key
func (s *PreferenceStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Theme ===

func (s *PreferenceStore) Theme() (string, bool) {
	data, ok := s.Get(keyTheme)
	if !ok {
		return "", false
	}
	return string(data), true
}

func (s *PreferenceStore) SaveTheme(name string) error {
	return s.Set(keyTheme, []byte(name))
}
