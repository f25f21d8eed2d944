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

// Package storage gives typed access to single values kept in a kv store.
//
// A value is declared once with two static names, an owner scope and a value
// id, and lives under
//
//	Twox128(ownerScope) ++ Twox128(valueID)
//
// Every operation derives that key again; nothing is cached between calls.
// What the store holds is an optional payload. What callers see is a query
// value produced by the declaration's QueryAdapter, which decides what an
// absent payload means (nil, zero, a default record) and which query values
// free the slot instead of being written.
//
// Operations take the store as first argument: kv.Getter for reads, kv.Putter
// for writes, kv.RwStore for read-modify-write. They are synchronous and do no
// locking; the caller's transaction provides isolation.
package storage

import (
	"fmt"

	"github.com/erigontech/statevalue/common"
	"github.com/erigontech/statevalue/common/hex"
)

const KeyLength = 2 * common.Hash16Length

// Key is the final storage key of a declared value.
type Key [KeyLength]byte

// FinalKey returns Twox128(ownerScope) ++ Twox128(valueID).
func FinalKey(ownerScope, valueID []byte) (k Key) {
	scope, id := common.Twox128(ownerScope), common.Twox128(valueID)
	copy(k[:common.Hash16Length], scope[:])
	copy(k[common.Hash16Length:], id[:])
	return k
}

func (k Key) Bytes() []byte { return k[:] }

func (k Key) String() string { return hex.Encode(k[:]) }

// ParseKey reads a hex key, with or without 0x prefix.
func ParseKey(s string) (Key, error) {
	var k Key
	b, err := hex.Decode(s)
	if err != nil {
		return k, fmt.Errorf("parse key: %w", err)
	}
	if len(b) != KeyLength {
		return k, fmt.Errorf("parse key: want %d bytes, got %d", KeyLength, len(b))
	}
	copy(k[:], b)
	return k, nil
}
