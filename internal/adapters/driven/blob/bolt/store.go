// Package bolt provides the blob store on top of bbolt.
//
// Large payloads (original PDF bytes, oversized HTML) are kept here,
// keyed by book ID, with a lifecycle independent of the metadata rows:
// the library service deletes the payload alongside the book record.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bbolt "go.etcd.io/bbolt"

	"github.com/foliolabs/folio/internal/core/domain"
	"github.com/foliolabs/folio/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.BlobStore = (*Store)(nil)

// blobBucket is the single bucket holding all payloads.
var blobBucket = []byte("blobs")

// Store is a bbolt-backed blob store.
type Store struct {
	db *bbolt.DB
}

// NewStore opens (or creates) the blob database in dataDir.
// If dataDir is empty, defaults to ~/.folio/data/blobs.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".folio", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := bbolt.Open(filepath.Join(dataDir, "blobs.db"), 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening blob store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blobBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating blob bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Put stores a payload under a key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(blobBucket).Put([]byte(key), data)
	})
}

// Get retrieves a payload. Returns domain.ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(blobBucket).Get([]byte(key))
		if v == nil {
			return domain.ErrNotFound
		}
		// The slice is only valid inside the transaction.
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a payload. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(blobBucket).Delete([]byte(key))
	})
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
