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

// Package kvcache keeps recently read committed payloads in memory.
//
// Only committed state is cached. Keys written by a transaction bypass the
// cache for the rest of that transaction and are evicted when it commits, so
// a rolled back transaction leaves the cache untouched.
package kvcache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erigontech/statevalue/kv"
)

type entry struct {
	payload []byte
	ok      bool
}

type DB struct {
	kv.RwDB
	cache *lru.Cache[string, entry]
}

// New wraps db with an LRU of up to size payloads, absences included.
func New(db kv.RwDB, size int) (*DB, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &DB{RwDB: db, cache: c}, nil
}

func (db *DB) Len() int { return db.cache.Len() }

func (db *DB) BeginRw(ctx context.Context) (kv.RwTx, error) {
	tx, err := db.RwDB.BeginRw(ctx)
	if err != nil {
		return nil, err
	}
	return &View{RwTx: tx, cache: db.cache, dirty: map[string]struct{}{}}, nil
}

type View struct {
	kv.RwTx
	cache *lru.Cache[string, entry]
	dirty map[string]struct{}
}

func (v *View) Has(key []byte) bool {
	_, ok := v.Get(key)
	return ok
}

func (v *View) Get(key []byte) ([]byte, bool) {
	k := string(key)
	if _, ok := v.dirty[k]; ok {
		return v.RwTx.Get(key)
	}
	if e, ok := v.cache.Get(k); ok {
		if !e.ok {
			return nil, false
		}
		return kv.Copy(e.payload), true
	}
	payload, ok := v.RwTx.Get(key)
	if v.RwTx.Err() != nil {
		return payload, ok
	}
	v.cache.Add(k, entry{payload: kv.Copy(payload), ok: ok})
	return payload, ok
}

func (v *View) Put(key, payload []byte) {
	v.dirty[string(key)] = struct{}{}
	v.RwTx.Put(key, payload)
}

func (v *View) Delete(key []byte) {
	v.dirty[string(key)] = struct{}{}
	v.RwTx.Delete(key)
}

func (v *View) Append(key, item []byte) {
	v.dirty[string(key)] = struct{}{}
	v.RwTx.Append(key, item)
}

func (v *View) Commit() error {
	if err := v.RwTx.Commit(); err != nil {
		return err
	}
	for k := range v.dirty {
		v.cache.Remove(k)
	}
	v.dirty = map[string]struct{}{}
	return nil
}
