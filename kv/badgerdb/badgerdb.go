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

// Package badgerdb is a persistent kv.RwDB on top of BadgerDB.
package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ledgerwatch/log/v3"

	"github.com/erigontech/statevalue/common/dbg"
	"github.com/erigontech/statevalue/kv"
)

type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything in RAM; used by tests.
	InMemory bool
	// SyncWrites fsyncs on every commit.
	SyncWrites bool
}

func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger routes BadgerDB's printf-style logging to log/v3.
type badgerLogger struct {
	logger log.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}
func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}
func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace(fmt.Sprintf(format, args...))
}

type DB struct {
	db  *badger.DB
	log log.Logger

	// badger allows concurrent update transactions; the kv contract doesn't
	writer chan struct{}
}

var _ kv.RwDB = (*DB)(nil)

func Open(cfg Config, logger log.Logger) (*DB, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerdb: path is required for a persistent database")
	}
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("could not create dir: %s, %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites && !dbg.NoSync()).
		WithNumVersionsToKeep(1).
		WithLogger(badgerLogger{logger: logger.New("db", "badger")})

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &DB{db: bdb, log: logger, writer: make(chan struct{}, 1)}, nil
}

func (db *DB) BeginRw(ctx context.Context) (kv.RwTx, error) {
	select {
	case db.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		<-db.writer
		return nil, err
	}
	return &tx{db: db, txn: db.db.NewTransaction(true)}, nil
}

func (db *DB) Close() {
	if err := db.db.Close(); err != nil {
		db.log.Warn("[badgerdb] close", "err", err)
	}
}

type tx struct {
	db   *DB
	txn  *badger.Txn
	err  error
	done bool
}

var _ kv.RwTx = (*tx)(nil)

func (tx *tx) fail(op string, err error) {
	if tx.err == nil {
		tx.err = fmt.Errorf("badgerdb: %s: %w", op, err)
	}
}

func (tx *tx) Has(key []byte) bool {
	if tx.err != nil {
		return false
	}
	_, err := tx.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		tx.fail("has", err)
		return false
	}
	return true
}

func (tx *tx) Get(key []byte) ([]byte, bool) {
	if tx.err != nil {
		return nil, false
	}
	item, err := tx.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false
	}
	if err != nil {
		tx.fail("get", err)
		return nil, false
	}
	v, err := item.ValueCopy(nil)
	if err != nil {
		tx.fail("get", err)
		return nil, false
	}
	if v == nil {
		v = []byte{}
	}
	return v, true
}

func (tx *tx) Put(key, payload []byte) {
	if tx.err != nil {
		return
	}
	// badger keeps the slices until commit
	if err := tx.txn.Set(kv.Copy(key), append([]byte{}, payload...)); err != nil {
		tx.fail("put", err)
	}
}

func (tx *tx) Delete(key []byte) {
	if tx.err != nil {
		return
	}
	if err := tx.txn.Delete(kv.Copy(key)); err != nil {
		tx.fail("delete", err)
	}
}

func (tx *tx) Append(key, item []byte) {
	if tx.err != nil {
		return
	}
	kv.AppendItem(tx, tx.db.log, key, item)
}

func (tx *tx) Err() error { return tx.err }

func (tx *tx) Commit() error {
	if tx.done {
		return nil
	}
	defer tx.finish()
	if tx.err != nil {
		tx.txn.Discard()
		return tx.err
	}
	start := time.Now()
	if err := tx.txn.Commit(); err != nil {
		return fmt.Errorf("badgerdb: commit: %w", err)
	}
	if slow := dbg.SlowCommit(); slow > 0 && time.Since(start) > slow {
		tx.db.log.Info("Commit", "whole", time.Since(start))
	}
	return nil
}

func (tx *tx) Rollback() {
	if tx.done {
		return
	}
	tx.txn.Discard()
	tx.finish()
}

func (tx *tx) finish() {
	tx.done = true
	<-tx.db.writer
}
