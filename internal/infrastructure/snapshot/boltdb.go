// Package snapshot keeps the last successfully loaded code catalog on disk so
// the service can start while remote catalog sources are unavailable.
package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/apiresponse/domain"
)

var metaKey = []byte("saved_at")

// Store wraps BoltDB; each code is a key in the catalog bucket.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "catalog"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, bucket: []byte(bucket)}, nil
}

type entry struct {
	Message string `json:"message"`
}

// Save replaces the stored catalog with codes.
func (s *Store) Save(codes map[domain.ApiCode]string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		b, err := tx.CreateBucket(s.bucket)
		if err != nil {
			return err
		}
		for code, msg := range codes {
			payload, err := json.Marshal(entry{Message: msg})
			if err != nil {
				return err
			}
			if err := b.Put(encodeKey(code), payload); err != nil {
				return err
			}
		}
		stamp, err := time.Now().UTC().MarshalText()
		if err != nil {
			return err
		}
		return b.Put(metaKey, stamp)
	})
}

// Load returns the stored catalog and the time it was saved.
// domain.ErrCatalogNotFound is returned when nothing was saved yet.
func (s *Store) Load() (map[domain.ApiCode]string, time.Time, error) {
	if s == nil || s.db == nil {
		return nil, time.Time{}, bolt.ErrDatabaseNotOpen
	}

	codes := make(map[domain.ApiCode]string)
	var savedAt time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		stamp := b.Get(metaKey)
		if stamp == nil {
			return domain.ErrCatalogNotFound
		}
		if err := savedAt.UnmarshalText(stamp); err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			code, ok := decodeKey(k)
			if !ok {
				return nil
			}
			var e entry
			if err := json.Unmarshal(v, &e); err != nil {
				return nil
			}
			codes[code] = e.Message
			return nil
		})
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return codes, savedAt, nil
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func encodeKey(code domain.ApiCode) []byte {
	return []byte("code:" + strconv.Itoa(int(code)))
}

func decodeKey(k []byte) (domain.ApiCode, bool) {
	const prefix = "code:"
	if len(k) <= len(prefix) || string(k[:len(prefix)]) != prefix {
		return 0, false
	}
	n, err := strconv.Atoi(string(k[len(prefix):]))
	if err != nil {
		return 0, false
	}
	return domain.ApiCode(n), true
}
