/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldbhelper

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

var (
	dbNameKeySep   = []byte{0x00}
	healthCheckKey = []byte("healthcheck")
)

// Provider enables to use a single leveldb as multiple logical leveldbs
type Provider struct {
	db *DB

	mux       sync.Mutex
	dbHandles map[string]*DBHandle
}

// NewProvider constructs a Provider and opens the underlying db
func NewProvider(conf *Conf) (*Provider, error) {
	db := CreateDB(conf)
	if err := db.Open(); err != nil {
		return nil, err
	}
	return &Provider{
		db:        db,
		dbHandles: make(map[string]*DBHandle),
	}, nil
}

// GetDBHandle returns a handle to a named db. Handles are cached so that every
// caller of the same name shares one handle, and with it one write lock.
func (p *Provider) GetDBHandle(dbName string) *DBHandle {
	p.mux.Lock()
	defer p.mux.Unlock()
	dbHandle := p.dbHandles[dbName]
	if dbHandle == nil {
		dbHandle = &DBHandle{dbName: dbName, db: p.db}
		p.dbHandles[dbName] = dbHandle
	}
	return dbHandle
}

// HealthCheck verifies that the underlying db can serve reads.
func (p *Provider) HealthCheck(ctx context.Context) error {
	if _, err := p.db.Get(healthCheckKey); err != nil {
		return errors.WithMessage(err, "leveldb is not readable")
	}
	return nil
}

// Close closes the underlying leveldb
func (p *Provider) Close() {
	p.db.Close()
}

// DBHandle is an handle to a named db
type DBHandle struct {
	dbName string
	db     *DB
	mutex  sync.Mutex
}

// Name returns the name of the logical db
func (h *DBHandle) Name() string {
	return h.dbName
}

// Get returns the value for the given key
func (h *DBHandle) Get(key []byte) ([]byte, error) {
	return h.db.Get(constructLevelKey(h.dbName, key))
}

// Put saves the key/value
func (h *DBHandle) Put(key []byte, value []byte, sync bool) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.db.Put(constructLevelKey(h.dbName, key), value, sync)
}

// Delete deletes the given key
func (h *DBHandle) Delete(key []byte, sync bool) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.db.Delete(constructLevelKey(h.dbName, key), sync)
}

// PutIfAbsent stores value under every one of keys in a single batch, but
// only if none of the keys is present yet. It reports whether the write took
// place. The existence check and the write happen under the handle lock.
func (h *DBHandle) PutIfAbsent(keys [][]byte, value []byte, sync bool) (bool, error) {
	if len(keys) == 0 {
		return false, errors.New("no keys supplied")
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	batch := &leveldb.Batch{}
	for _, key := range keys {
		levelKey := constructLevelKey(h.dbName, key)
		existing, err := h.db.Get(levelKey)
		if err != nil {
			return false, err
		}
		if existing != nil {
			logger.Debugf("key [%s] already present in db [%s]", key, h.dbName)
			return false, nil
		}
		batch.Put(levelKey, value)
	}

	if err := h.db.WriteBatch(batch, sync); err != nil {
		return false, err
	}
	return true, nil
}

func constructLevelKey(dbName string, key []byte) []byte {
	return append(append([]byte(dbName), dbNameKeySep...), key...)
}
