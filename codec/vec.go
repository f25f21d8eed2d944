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

package codec

import (
	"fmt"
	"math"
)

// VecCodec encodes []E as compact(len) followed by each item. It is the only
// sequence-shaped codec: its layout allows DecodeLen and AppendOrNew.
type VecCodec[E any] struct {
	item Codec[E]
}

func Vec[E any](item Codec[E]) VecCodec[E] { return VecCodec[E]{item: item} }

// Item returns the codec of a single element.
func (c VecCodec[E]) Item() Codec[E] { return c.item }

func (c VecCodec[E]) Len(v []E) int { return len(v) }

func (c VecCodec[E]) EncodeTo(dst []byte, v []E) []byte {
	dst = AppendCompact(dst, uint64(len(v)))
	for _, e := range v {
		dst = c.item.EncodeTo(dst, e)
	}
	return dst
}

func (c VecCodec[E]) DecodeFrom(src []byte) ([]E, []byte, error) {
	n, w, err := decodeCount(src)
	if err != nil {
		return nil, src, err
	}
	rest := src[w:]
	// items may encode to zero bytes, so the prefix alone can't size the slice
	out := make([]E, 0, min(n, len(rest)))
	for i := 0; i < n; i++ {
		var e E
		e, rest, err = c.item.DecodeFrom(rest)
		if err != nil {
			return nil, src, fmt.Errorf("item %d of %d: %w", i, n, err)
		}
		out = append(out, e)
	}
	return out, rest, nil
}

// DecodeLen reads only the length prefix of an encoded sequence.
func DecodeLen(payload []byte) (int, error) {
	n, _, err := decodeCount(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLength, err)
	}
	return n, nil
}

// AppendOrNew adds one encoded item to an encoded sequence without decoding
// the existing items. A missing payload starts a new one-element sequence.
// When the existing prefix can't be decoded, or the count would leave the u32
// range, the payload is replaced by a one-element sequence and reset is true.
// The item bytes of a present payload are not checked.
func AppendOrNew(payload []byte, exists bool, item []byte) (out []byte, reset bool) {
	if !exists {
		return newSingleton(item), false
	}
	n, w, err := decodeCount(payload)
	if err != nil || uint64(n) >= math.MaxUint32 {
		return newSingleton(item), true
	}
	prefix := AppendCompact(make([]byte, 0, 5), uint64(n)+1)
	out = make([]byte, 0, len(prefix)+len(payload)-w+len(item))
	out = append(out, prefix...)
	out = append(out, payload[w:]...)
	out = append(out, item...)
	return out, false
}

func newSingleton(item []byte) []byte {
	out := make([]byte, 0, 1+len(item))
	out = AppendCompact(out, 1)
	return append(out, item...)
}
