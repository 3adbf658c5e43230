package storage

import (
	"context"
	"errors"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps ciphertext blobs in a local badger database, keyed by
// content id. The default provider for single-node deployments.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Put(ctx context.Context, data []byte) (string, error) {
	cid := ContentID(data)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cid), data)
	})
	if err != nil {
		return "", err
	}
	return cid, nil
}

func (s *BadgerStore) Get(ctx context.Context, cid string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cid))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
