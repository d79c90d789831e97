// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// all provider keys are stored under this prefix
var storePrefix = []byte("config:")

// Store - provider persisted in a LevelDB database
type Store struct {
	sync.RWMutex
	db *leveldb.DB
}

// OpenStore - open or create the database directory
func OpenStore(name string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, errors.Wrapf(err, "open configuration store: %q", name)
	}
	return &Store{db: db}, nil
}

func prefixKey(key string) []byte {
	k := make([]byte, 0, len(storePrefix)+len(key))
	k = append(k, storePrefix...)
	return append(k, key...)
}

// Get - read a value, false if missing or the store is closed
func (s *Store) Get(key string) (string, bool) {
	s.RLock()
	defer s.RUnlock()
	if nil == s.db {
		return "", false
	}
	value, err := s.db.Get(prefixKey(key), nil)
	if nil != err {
		return "", false
	}
	return string(value), true
}

// Set - write a value
func (s *Store) Set(key string, value string) error {
	s.Lock()
	defer s.Unlock()
	if nil == s.db {
		return leveldb.ErrClosed
	}
	return s.db.Put(prefixKey(key), []byte(value), nil)
}

// Keys - all keys in the store, in order
func (s *Store) Keys() []string {
	s.RLock()
	defer s.RUnlock()
	if nil == s.db {
		return nil
	}

	keys := []string{}
	iter := s.db.NewIterator(nil, nil)
	for iter.Next() {
		k := iter.Key()
		if len(k) > len(storePrefix) && string(storePrefix) == string(k[:len(storePrefix)]) {
			keys = append(keys, string(k[len(storePrefix):]))
		}
	}
	iter.Release()
	return keys
}

// Close - flush and close the database
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()
	if nil == s.db {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
