package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
)

var listsBucket = []byte("Lists")

// BoltStore keeps every list as one value in a single bbolt bucket.
type BoltStore struct {
	db *bbolt.DB
}

// NewBolt opens (or creates) the database file at path.
func NewBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(listsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(listsBucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", listsBucket)
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		// v is only valid for the life of the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltStore) Put(_ context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(listsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), value)
	})
}

func (s *BoltStore) Health() map[string]string {
	stats := make(map[string]string)
	err := s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(listsBucket) == nil {
			return fmt.Errorf("bucket %s not found", listsBucket)
		}
		stats["size_bytes"] = strconv.FormatInt(tx.Size(), 10)
		return nil
	})
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["backend"] = "bolt"
	stats["path"] = s.db.Path()
	stats["open_read_tx"] = strconv.Itoa(dbStats.OpenTxN)
	stats["read_tx_total"] = strconv.Itoa(dbStats.TxN)
	return stats
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
