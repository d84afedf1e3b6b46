package limiter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketLoginSecurity = []byte("login_security")

// BoltStore persists limiter state in a BoltDB file, one JSON value per scope key.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens (or creates) the state file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketLoginSecurity); err != nil {
			return fmt.Errorf("failed to create login_security bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying file.
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) Get(ctx context.Context, key string) (State, bool, error) {
	var (
		state State
		found bool
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketLoginSecurity).Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		if err := json.Unmarshal(data, &state); err != nil {
			return ErrCorruptState
		}
		return nil
	})
	if err != nil {
		return State{}, found, err
	}

	return state, found, nil
}

func (s *BoltStore) Set(ctx context.Context, key string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal limiter state: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketLoginSecurity).Put([]byte(key), data)
	})
}

func (s *BoltStore) Clear(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketLoginSecurity).Delete([]byte(key))
	})
}

// Prune removes expired lockouts and undecodable records.
func (s *BoltStore) Prune(ctx context.Context, now time.Time) (int, error) {
	removed := 0

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketLoginSecurity)

		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var state State
			if err := json.Unmarshal(v, &state); err != nil || state.Expired(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})

	return removed, err
}
