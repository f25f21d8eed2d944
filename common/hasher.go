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

package common

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Hash16Length is the output size of Twox128.
const Hash16Length = 16

// Hash16 is a 128-bit, non-cryptographic digest.
type Hash16 [Hash16Length]byte

// Hasher holds the two seeded xxhash64 digests that make up Twox128.
type Hasher struct {
	lo *xxhash.Digest
	hi *xxhash.Digest
}

var hashersPool = sync.Pool{
	New: func() any {
		return &Hasher{lo: xxhash.NewWithSeed(0), hi: xxhash.NewWithSeed(1)}
	},
}

func NewHasher() *Hasher {
	h := hashersPool.Get().(*Hasher)
	h.lo.ResetWithSeed(0)
	h.hi.ResetWithSeed(1)
	return h
}
func ReturnHasherToPool(h *Hasher) { hashersPool.Put(h) }

// Write feeds p into both digests. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	_, _ = h.lo.Write(p)
	_, _ = h.hi.Write(p)
	return len(p), nil
}

// Sum16 returns seed-0 digest ++ seed-1 digest, each little-endian.
func (h *Hasher) Sum16() (out Hash16) {
	binary.LittleEndian.PutUint64(out[:8], h.lo.Sum64())
	binary.LittleEndian.PutUint64(out[8:], h.hi.Sum64())
	return out
}

// Twox128 is xxhash64 with seed 0 concatenated with xxhash64 with seed 1.
// Not suitable for attacker-controlled input; it is meant for static names.
func Twox128(data []byte) Hash16 {
	h := NewHasher()
	defer ReturnHasherToPool(h)
	_, _ = h.Write(data)
	return h.Sum16()
}
