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

package mdbx

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/erigontech/mdbx-go/mdbx"
	"github.com/ledgerwatch/log/v3"

	"github.com/erigontech/statevalue/common/dbg"
	"github.com/erigontech/statevalue/kv"
)

// Values lives in a single named table.
const Values = "Values"

const pageSize = 4 * 1024

type MdbxOpts struct {
	path       string
	label      string
	inMem      bool
	mapSize    datasize.ByteSize
	growthStep datasize.ByteSize
	flags      uint
	log        log.Logger
}

func NewMDBX(logger log.Logger) MdbxOpts {
	return MdbxOpts{
		label:      "values",
		growthStep: 2 * datasize.MB,
		log:        logger,
	}
}

func (opts MdbxOpts) Path(path string) MdbxOpts {
	opts.path = path
	return opts
}

func (opts MdbxOpts) Label(label string) MdbxOpts {
	opts.label = label
	return opts
}

// InMem places the environment in tmpDir and removes it on Close.
func (opts MdbxOpts) InMem(tmpDir string) MdbxOpts {
	opts.inMem = true
	opts.path = tmpDir
	return opts
}

func (opts MdbxOpts) MapSize(sz datasize.ByteSize) MdbxOpts {
	opts.mapSize = sz
	return opts
}

func (opts MdbxOpts) GrowthStep(sz datasize.ByteSize) MdbxOpts {
	opts.growthStep = sz
	return opts
}

func (opts MdbxOpts) Open() (*MdbxKV, error) {
	logger := opts.log.New("mdbx", opts.label)
	if opts.path == "" {
		return nil, fmt.Errorf("mdbx: path is required")
	}
	if opts.mapSize == 0 {
		if opts.inMem {
			opts.mapSize = 64 * datasize.MB
		} else {
			opts.mapSize = 256 * datasize.GB
		}
	}

	if !dbg.MdbxReadAhead() {
		opts.flags |= mdbx.NoReadahead
	}
	if dbg.NoSync() {
		opts.flags |= mdbx.SafeNoSync
	}

	env, err := mdbx.NewEnv(mdbx.Label(opts.label))
	if err != nil {
		return nil, err
	}
	if err = env.SetOption(mdbx.OptMaxDB, 1); err != nil {
		env.Close()
		return nil, err
	}
	if err = env.SetGeometry(-1, -1, int(opts.mapSize), int(opts.growthStep), -1, pageSize); err != nil {
		env.Close()
		return nil, err
	}
	if err = os.MkdirAll(opts.path, 0744); err != nil {
		env.Close()
		return nil, fmt.Errorf("could not create dir: %s, %w", opts.path, err)
	}
	if err = env.Open(opts.path, opts.flags, 0664); err != nil {
		env.Close()
		return nil, fmt.Errorf("%w, path: %s", err, opts.path)
	}

	var dbi mdbx.DBI
	if err = env.Update(func(txn *mdbx.Txn) error {
		dbi, err = txn.OpenDBISimple(Values, mdbx.Create)
		return err
	}); err != nil {
		env.Close()
		return nil, fmt.Errorf("create table %s: %w", Values, err)
	}

	return &MdbxKV{
		opts:   opts,
		env:    env,
		dbi:    dbi,
		log:    logger,
		writer: make(chan struct{}, 1),
	}, nil
}

func (opts MdbxOpts) MustOpen() *MdbxKV {
	db, err := opts.Open()
	if err != nil {
		panic(fmt.Errorf("fail to open mdbx: %w", err))
	}
	return db
}

type MdbxKV struct {
	opts   MdbxOpts
	env    *mdbx.Env
	dbi    mdbx.DBI
	log    log.Logger
	writer chan struct{}
}

var _ kv.RwDB = (*MdbxKV)(nil)

// BeginRw locks the calling goroutine to its OS thread until the transaction
// ends: mdbx write transactions are bound to the thread that opened them.
func (db *MdbxKV) BeginRw(ctx context.Context) (kv.RwTx, error) {
	select {
	case db.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		<-db.writer
		return nil, err
	}
	runtime.LockOSThread()
	txn, err := db.env.BeginTxn(nil, 0)
	if err != nil {
		runtime.UnlockOSThread()
		<-db.writer
		return nil, fmt.Errorf("mdbx: begin: %w", err)
	}
	return &MdbxTx{db: db, txn: txn}, nil
}

// Close closes db
// All transactions must be closed before closing the database.
func (db *MdbxKV) Close() {
	if db.env == nil {
		return
	}
	db.env.Close()
	db.env = nil

	if db.opts.inMem {
		if err := os.RemoveAll(db.opts.path); err != nil {
			db.log.Warn("failed to remove in-mem db file", "err", err)
		}
	} else {
		db.log.Info("database closed (MDBX)")
	}
}

type MdbxTx struct {
	db   *MdbxKV
	txn  *mdbx.Txn
	err  error
	done bool
}

var _ kv.RwTx = (*MdbxTx)(nil)

func (tx *MdbxTx) fail(op string, err error) {
	if tx.err == nil {
		tx.err = fmt.Errorf("mdbx: %s: %w", op, err)
	}
}

func (tx *MdbxTx) Has(key []byte) bool {
	_, ok := tx.get("has", key)
	return ok
}

func (tx *MdbxTx) Get(key []byte) ([]byte, bool) {
	v, ok := tx.get("get", key)
	if !ok {
		return nil, false
	}
	// v points into the memory map and is valid only until the txn ends
	c := make([]byte, len(v))
	copy(c, v)
	return c, true
}

func (tx *MdbxTx) get(op string, key []byte) ([]byte, bool) {
	if tx.err != nil {
		return nil, false
	}
	v, err := tx.txn.Get(tx.db.dbi, key)
	if mdbx.IsNotFound(err) {
		return nil, false
	}
	if err != nil {
		tx.fail(op, err)
		return nil, false
	}
	return v, true
}

func (tx *MdbxTx) Put(key, payload []byte) {
	if tx.err != nil {
		return
	}
	if err := tx.txn.Put(tx.db.dbi, key, payload, 0); err != nil {
		tx.fail("put", err)
	}
}

func (tx *MdbxTx) Delete(key []byte) {
	if tx.err != nil {
		return
	}
	err := tx.txn.Del(tx.db.dbi, key, nil)
	if err != nil && !mdbx.IsNotFound(err) {
		tx.fail("delete", err)
	}
}

func (tx *MdbxTx) Append(key, item []byte) {
	if tx.err != nil {
		return
	}
	kv.AppendItem(tx, tx.db.log, key, item)
}

func (tx *MdbxTx) Err() error { return tx.err }

func (tx *MdbxTx) Commit() error {
	if tx.done {
		return nil
	}
	defer tx.finish()
	if tx.err != nil {
		tx.txn.Abort()
		return tx.err
	}
	slowTx := 10 * time.Second
	if dbg.SlowCommit() > 0 {
		slowTx = dbg.SlowCommit()
	}
	latency, err := tx.txn.Commit()
	if err != nil {
		return fmt.Errorf("mdbx: commit: %w", err)
	}
	if latency.Whole > slowTx {
		tx.db.log.Info("Commit",
			"preparation", latency.Preparation,
			"audit", latency.Audit,
			"write", latency.Write,
			"fsync", latency.Sync,
			"ending", latency.Ending,
			"whole", latency.Whole,
		)
	}
	return nil
}

func (tx *MdbxTx) Rollback() {
	if tx.done {
		return
	}
	tx.txn.Abort()
	tx.finish()
}

func (tx *MdbxTx) finish() {
	tx.done = true
	runtime.UnlockOSThread()
	<-tx.db.writer
}
