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

package kv

import "context"

/*
Naming:
 tx - Database Transaction
 k, v - key, value
 payload - the bytes stored under one key
 item - the encoding of one element of a sequence-shaped payload

The store is byte-addressed and has no tables: callers derive fixed-size keys
and own the layout of the payloads. Methods on Getter and Putter don't return
errors. Backends with I/O record the first failure on the transaction, turn
every later call into a no-op (reads report absence) and return the failure
from Commit.
*/

//go:generate mockgen -destination=./rw_store_mock.go -package=kv . RwStore

type Getter interface {
	// Has reports whether a payload is stored under key.
	Has(key []byte) bool

	// Get returns a copy of the payload stored under key. ok is false when
	// there is none; an empty payload is present and distinct from absence.
	Get(key []byte) (payload []byte, ok bool)
}

type Putter interface {
	// Put overwrites the payload under key.
	Put(key, payload []byte)

	// Delete removes the payload under key. No-op when absent.
	Delete(key []byte)

	// Append adds one encoded item to the sequence-shaped payload under key,
	// rewriting only its length prefix. See codec.AppendOrNew.
	Append(key, item []byte)
}

type RwStore interface {
	Getter
	Putter
}

type RwTx interface {
	RwStore

	// Err returns the first backend failure seen by this transaction.
	Err() error
	// Commit makes the writes durable. It returns Err() if it is set, in
	// which case nothing is written.
	Commit() error
	// Rollback discards the writes. Safe to call after Commit.
	Rollback()
}

type RwDB interface {
	// BeginRw starts a write transaction. Only one can be open at a time;
	// BeginRw blocks until the previous one finishes.
	BeginRw(ctx context.Context) (RwTx, error)
	Close()
}
