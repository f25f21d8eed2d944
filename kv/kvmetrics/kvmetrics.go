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

// Package kvmetrics counts store operations per database label.
package kvmetrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/metrics"
)

type Counters struct {
	Reads   metrics.Counter
	Misses  metrics.Counter
	Writes  metrics.Counter
	Deletes metrics.Counter
	Appends metrics.Counter
}

// NewCounters registers the kv_* counters for label in set.
func NewCounters(set *metrics.Set, label string) (*Counters, error) {
	labels := prometheus.Labels{"db": label}
	var (
		c   Counters
		err error
	)
	for _, m := range []struct {
		dst  *metrics.Counter
		name string
	}{
		{&c.Reads, "kv_reads_total"},
		{&c.Misses, "kv_read_misses_total"},
		{&c.Writes, "kv_writes_total"},
		{&c.Deletes, "kv_deletes_total"},
		{&c.Appends, "kv_appends_total"},
	} {
		if *m.dst, err = set.GetOrCreateCounter(m.name, labels); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

type DB struct {
	kv.RwDB
	c *Counters
}

func WrapDB(db kv.RwDB, c *Counters) *DB { return &DB{RwDB: db, c: c} }

func (db *DB) BeginRw(ctx context.Context) (kv.RwTx, error) {
	tx, err := db.RwDB.BeginRw(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{RwTx: tx, c: db.c}, nil
}

type Tx struct {
	kv.RwTx
	c *Counters
}

func (tx *Tx) Has(key []byte) bool {
	tx.c.Reads.Inc()
	ok := tx.RwTx.Has(key)
	if !ok {
		tx.c.Misses.Inc()
	}
	return ok
}

func (tx *Tx) Get(key []byte) ([]byte, bool) {
	tx.c.Reads.Inc()
	v, ok := tx.RwTx.Get(key)
	if !ok {
		tx.c.Misses.Inc()
	}
	return v, ok
}

func (tx *Tx) Put(key, payload []byte) {
	tx.c.Writes.Inc()
	tx.RwTx.Put(key, payload)
}

func (tx *Tx) Delete(key []byte) {
	tx.c.Deletes.Inc()
	tx.RwTx.Delete(key)
}

func (tx *Tx) Append(key, item []byte) {
	tx.c.Appends.Inc()
	tx.RwTx.Append(key, item)
}
