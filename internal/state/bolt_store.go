package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const boardBucket = "boards"

// boltStore implements a Store backed by BoltDB. Each key is a board name;
// each value is the JSON-encoded item list.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boardBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Load reads all board entries. A value that fails to decode is skipped so a
// single corrupt entry never poisons the whole run.
func (b *boltStore) Load() (map[string][]string, error) {
	if b == nil || b.db == nil {
		return map[string][]string{}, nil
	}

	parsed := make(map[string][]string)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(boardBucket))
		if bucket == nil {
			return fmt.Errorf("board bucket missing")
		}
		return bucket.ForEach(func(k, v []byte) error {
			var items []string
			if err := json.Unmarshal(v, &items); err != nil {
				return nil
			}
			parsed[string(k)] = items
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

// Save replaces the bucket contents with the given mapping in one transaction.
func (b *boltStore) Save(state map[string][]string) error {
	if b == nil || b.db == nil {
		return nil
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(boardBucket)); err != nil {
			return fmt.Errorf("reset board bucket: %w", err)
		}
		bucket, err := tx.CreateBucket([]byte(boardBucket))
		if err != nil {
			return fmt.Errorf("recreate board bucket: %w", err)
		}
		for name, items := range state {
			value, err := json.Marshal(items)
			if err != nil {
				return fmt.Errorf("marshal items for board %q: %w", name, err)
			}
			if err := bucket.Put([]byte(name), value); err != nil {
				return err
			}
		}
		return nil
	})
}
