/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package identity

import (
	"encoding/json"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/hyperledger/fabric-bnc/common/leveldbhelper"
	"github.com/pkg/errors"
)

//go:generate counterfeiter -o mock/collection.go -fake-name Collection . Collection

// Collection is the persistent key/value collection identity records live in.
type Collection interface {
	// Get returns nil when the key is absent.
	Get(key []byte) ([]byte, error)
	// PutIfAbsent writes value under all keys, or nothing if any key exists.
	PutIfAbsent(keys [][]byte, value []byte, sync bool) (bool, error)
}

// CollectionProvider opens named collections, creating them if needed.
type CollectionProvider interface {
	OpenCollection(name string) (Collection, error)
}

// LevelDBCollections serves collections out of a single leveldb.
type LevelDBCollections struct {
	Provider *leveldbhelper.Provider
}

func (l *LevelDBCollections) OpenCollection(name string) (Collection, error) {
	if l.Provider == nil {
		return nil, errors.Errorf("no leveldb provider for collection [%s]", name)
	}
	return l.Provider.GetDBHandle(name), nil
}

// CollectionName is the name of the identity collection of a connection profile.
func CollectionName(profile string) string {
	return "identities/" + profile
}

// cacheSize bounds the records a Store keeps in memory.
const cacheSize = 4 * 1024 * 1024

// Store reads and writes identity records in a Collection. Records are never
// rewritten once stored, so reads are served from an in-memory cache after
// the first lookup.
type Store struct {
	collection Collection
	cache      *fastcache.Cache
}

// NewStore wraps a collection.
func NewStore(c Collection) *Store {
	return &Store{
		collection: c,
		cache:      fastcache.New(cacheSize),
	}
}

func (s *Store) read(key string) ([]byte, error) {
	if raw, ok := s.cache.HasGet(nil, []byte(key)); ok {
		return raw, nil
	}
	raw, err := s.collection.Get([]byte(key))
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read identity [%s]", key)
	}
	if raw != nil {
		s.cache.Set([]byte(key), raw)
	}
	return raw, nil
}

// Get returns the identity stored under key.
func (s *Store) Get(key string) (*Identity, error) {
	raw, err := s.read(key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, IdentityNotFoundError{Name: key}
	}

	id := &Identity{}
	if err := json.Unmarshal(raw, id); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal identity [%s]", key)
	}
	return id, nil
}

// Exists reports whether a record is stored under key.
func (s *Store) Exists(key string) (bool, error) {
	raw, err := s.read(key)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

// Add stores one serialized record under every key in a single atomic
// insert-if-absent. If any key is taken nothing is written and a
// DuplicateIdentityError is returned.
func (s *Store) Add(id *Identity, keys ...string) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal identity [%s]", id.Name)
	}

	levelKeys := make([][]byte, 0, len(keys))
	for _, k := range keys {
		levelKeys = append(levelKeys, []byte(k))
	}

	written, err := s.collection.PutIfAbsent(levelKeys, raw, true)
	if err != nil {
		return errors.WithMessagef(err, "failed to store identity [%s]", id.Name)
	}
	if !written {
		return DuplicateIdentityError{Keys: keys}
	}
	for _, k := range levelKeys {
		s.cache.Set(k, raw)
	}
	return nil
}
