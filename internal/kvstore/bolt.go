package kvstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const defaultBucket = "productcards"

// BoltStore keeps every key in a single bbolt bucket
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (or creates) the database file and its bucket
func OpenBolt(path, bucket string) (*BoltStore, error) {
	if bucket == "" {
		bucket = defaultBucket
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "kvstore: open bolt %s", path)
	}
	s := &BoltStore{db: db, bucket: []byte(bucket)}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "kvstore: create bucket %s", bucket)
	}
	return s, nil
}

func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return ErrKeyNotFound
		}
		// v is only valid for the life of the transaction
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BoltStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
	return errors.Wrapf(err, "kvstore: put %s", key)
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
