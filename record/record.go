// Package record keeps run records in a bolt database so that runs can be listed and replayed.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/dasnellings/motifTools/request"
	"github.com/op/go-logging"
	bolt "go.etcd.io/bbolt"
	"time"
)

var log = logging.MustGetLogger("record")

func init() {
	logging.SetLevel(logging.WARNING, "record")
}

// RUNS is the bucket holding all run records.
var RUNS = []byte("runs")

var ErrExists = errors.New("run record already exists")

// Store is a bolt backed collection of run records keyed by request.Record.Key.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening run database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores r and returns its key. Existing records are never replaced, saving a second
// record under the same key returns ErrExists.
func (s *Store) Save(r request.Record) (string, error) {
	key := r.Key()
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(RUNS)
		if err != nil {
			return err
		}
		if b.Get([]byte(key)) != nil {
			return fmt.Errorf("%w: %s", ErrExists, key)
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return "", err
	}
	log.Infof("saved run record %s", key)
	return key, nil
}

// Load returns the record stored under key.
func (s *Store) Load(key string) (request.Record, error) {
	var r request.Record
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(RUNS)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return r, err
	}
	if data == nil {
		return r, fmt.Errorf("no run record with key %s", key)
	}
	err = json.Unmarshal(data, &r)
	return r, err
}

// Keys returns all record keys in byte order, which is chronological within a command.
func (s *Store) Keys() ([]string, error) {
	var ans []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(RUNS)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			ans = append(ans, string(k))
			return nil
		})
	})
	return ans, err
}
