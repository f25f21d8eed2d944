// Copyright 2026 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package memdb

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ledgerwatch/log/v3"
	"github.com/tidwall/btree"

	"github.com/erigontech/statevalue/kv"
)

var ErrClosed = errors.New("memdb: database closed")

// DB keeps all payloads in an ordered in-memory tree. A write transaction
// works on a copy-on-write clone of the tree and publishes it on Commit.
type DB struct {
	writer sync.Mutex // held by the open write transaction

	mu     sync.RWMutex
	data   *btree.Map[string, []byte]
	closed bool

	log log.Logger
}

var _ kv.RwDB = (*DB)(nil)

func New(logger log.Logger) *DB {
	return &DB{data: new(btree.Map[string, []byte]), log: logger}
}

func (db *DB) BeginRw(ctx context.Context) (kv.RwTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.writer.Lock()
	db.mu.RLock()
	closed, data := db.closed, db.data.Copy()
	db.mu.RUnlock()
	if closed {
		db.writer.Unlock()
		return nil, ErrClosed
	}
	return &tx{db: db, data: data}, nil
}

func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
}

// Len is the number of committed payloads.
func (db *DB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.data.Len()
}

type tx struct {
	db   *DB
	data *btree.Map[string, []byte]
	done bool
}

var _ kv.RwTx = (*tx)(nil)

func (tx *tx) Has(key []byte) bool {
	_, ok := tx.data.Get(string(key))
	return ok
}

func (tx *tx) Get(key []byte) ([]byte, bool) {
	v, ok := tx.data.Get(string(key))
	if !ok {
		return nil, false
	}
	c := make([]byte, len(v))
	copy(c, v)
	return c, true
}

func (tx *tx) Put(key, payload []byte) {
	c := make([]byte, len(payload))
	copy(c, payload)
	tx.data.Set(string(key), c)
}

func (tx *tx) Delete(key []byte) { tx.data.Delete(string(key)) }

func (tx *tx) Append(key, item []byte) { kv.AppendItem(tx, tx.db.log, key, item) }

func (tx *tx) Err() error { return nil }

func (tx *tx) Commit() error {
	if tx.done {
		return nil
	}
	tx.db.mu.Lock()
	closed := tx.db.closed
	if !closed {
		tx.db.data = tx.data
	}
	tx.db.mu.Unlock()
	tx.finish()
	if closed {
		return ErrClosed
	}
	return nil
}

func (tx *tx) Rollback() {
	if tx.done {
		return
	}
	tx.finish()
}

func (tx *tx) finish() {
	tx.done = true
	tx.data = nil
	tx.db.writer.Unlock()
}

func NewTestDB(tb testing.TB) *DB {
	tb.Helper()
	db := New(log.Root())
	tb.Cleanup(db.Close)
	return db
}

func NewTestTx(tb testing.TB) (*DB, kv.RwTx) {
	tb.Helper()
	db := NewTestDB(tb)
	tx, err := db.BeginRw(context.Background()) //nolint:gocritic
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(tx.Rollback)
	return db, tx
}
