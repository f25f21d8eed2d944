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

package storage

import (
	"fmt"

	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/kv"
)

// Sequence is a Value whose stored type is a codec.Vec. It adds the two
// operations that work on the encoding directly: Append and DecodeLen.
type Sequence[E, Q any] struct {
	*Value[[]E, Q]
	vec codec.VecCodec[E]
}

func NewSequence[E, Q any](ownerScope, valueID string, item codec.Codec[E], q QueryAdapter[[]E, Q]) *Sequence[E, Q] {
	vec := codec.Vec(item)
	return &Sequence[E, Q]{Value: NewValue[[]E, Q](ownerScope, valueID, vec, q), vec: vec}
}

// Append adds item to the end of the stored sequence without decoding it.
// An absent payload becomes a one-element sequence. A present payload must
// already be a well-formed encoding of []E; that isn't checked.
func (s *Sequence[E, Q]) Append(tx kv.Putter, item E) {
	tx.Append(s.Key().Bytes(), codec.Encode(s.vec.Item(), item))
}

// DecodeLen reads only the length prefix of the stored sequence. Without a
// payload it returns the length of the adapter's view of absence.
func (s *Sequence[E, Q]) DecodeLen(tx kv.Getter) (int, error) {
	if raw, ok := tx.Get(s.Key().Bytes()); ok {
		n, err := codec.DecodeLen(raw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", s, err)
		}
		return n, nil
	}
	var none []E
	v, ok := s.query.ToOptional(s.query.FromOptional(none, false))
	if !ok {
		return 0, nil
	}
	return s.vec.Len(v), nil
}
