package boltcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("search_responses")

// Cache is a TTL cache for serialized search responses backed by BoltDB.
type Cache struct {
	db  *bolt.DB
	ttl time.Duration
	mu  sync.RWMutex
	now func() time.Time
}

type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	Value    json.RawMessage `json:"value"`
}

// New opens (or creates) the cache database at path. Entries older than ttl
// are treated as absent and removed lazily on read.
func New(path string, ttl time.Duration) (*Cache, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

// Get returns the cached value for key, reporting whether a fresh entry was
// found. Expired entries are deleted on the way out.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	c.mu.RLock()
	var e entry
	found := false
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("failed to decode cache entry: %w", err)
		}
		found = true
		return nil
	})
	c.mu.RUnlock()
	if err != nil || !found {
		return nil, false, err
	}

	if c.now().Sub(e.StoredAt) > c.ttl {
		c.mu.Lock()
		defer c.mu.Unlock()
		err := c.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketName).Delete([]byte(key))
		})
		return nil, false, err
	}

	return e.Value, true, nil
}

// Put stores value under key with the current timestamp.
func (c *Cache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(entry{StoredAt: c.now(), Value: value})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketName)
		return err
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
