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
	"encoding/binary"
	"math"
	"math/bits"
)

// Compact integer modes, selected by the two low bits of the first byte.
const (
	compactSingle = 0b00
	compactTwo    = 0b01
	compactFour   = 0b10
	compactBig    = 0b11

	maxCompactSingle = 1<<6 - 1
	maxCompactTwo    = 1<<14 - 1
	maxCompactFour   = 1<<30 - 1
)

// CompactLen is the number of bytes EncodeCompact produces for n.
func CompactLen(n uint64) int {
	switch {
	case n <= maxCompactSingle:
		return 1
	case n <= maxCompactTwo:
		return 2
	case n <= maxCompactFour:
		return 4
	}
	return 1 + bigLen(n)
}

func bigLen(n uint64) int {
	l := (bits.Len64(n) + 7) / 8
	if l < 4 {
		l = 4
	}
	return l
}

// AppendCompact appends the compact encoding of n to dst.
func AppendCompact(dst []byte, n uint64) []byte {
	switch {
	case n <= maxCompactSingle:
		return append(dst, byte(n<<2)|compactSingle)
	case n <= maxCompactTwo:
		return binary.LittleEndian.AppendUint16(dst, uint16(n<<2)|compactTwo)
	case n <= maxCompactFour:
		return binary.LittleEndian.AppendUint32(dst, uint32(n<<2)|compactFour)
	}
	l := bigLen(n)
	dst = append(dst, byte(l-4)<<2|compactBig)
	for i := 0; i < l; i++ {
		dst = append(dst, byte(n>>(8*i)))
	}
	return dst
}

// DecodeCompact reads a compact integer from the front of src and returns it
// with the number of bytes consumed. Non-canonical encodings are rejected.
func DecodeCompact(src []byte) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, shortInput("compact", 1, 0)
	}
	switch src[0] & 0b11 {
	case compactSingle:
		return uint64(src[0] >> 2), 1, nil
	case compactTwo:
		if len(src) < 2 {
			return 0, 0, shortInput("compact", 2, len(src))
		}
		n := uint64(binary.LittleEndian.Uint16(src) >> 2)
		if n <= maxCompactSingle {
			return 0, 0, decodeErr("compact: non-canonical two-byte encoding of %d", n)
		}
		return n, 2, nil
	case compactFour:
		if len(src) < 4 {
			return 0, 0, shortInput("compact", 4, len(src))
		}
		n := uint64(binary.LittleEndian.Uint32(src) >> 2)
		if n <= maxCompactTwo {
			return 0, 0, decodeErr("compact: non-canonical four-byte encoding of %d", n)
		}
		return n, 4, nil
	}
	l := int(src[0]>>2) + 4
	if l > 8 {
		return 0, 0, decodeErr("compact: %d-byte integer does not fit in 64 bits", l)
	}
	if len(src) < 1+l {
		return 0, 0, shortInput("compact", 1+l, len(src))
	}
	if src[l] == 0 {
		return 0, 0, decodeErr("compact: non-canonical big-integer encoding")
	}
	var n uint64
	for i := 0; i < l; i++ {
		n |= uint64(src[1+i]) << (8 * i)
	}
	if n <= maxCompactFour {
		return 0, 0, decodeErr("compact: non-canonical big-integer encoding of %d", n)
	}
	return n, 1 + l, nil
}

// decodeCount reads a sequence length, bounded by the u32 range SCALE uses
// for collection lengths and by the platform int.
func decodeCount(src []byte) (int, int, error) {
	n, w, err := DecodeCompact(src)
	if err != nil {
		return 0, 0, err
	}
	if n > math.MaxUint32 {
		return 0, 0, decodeErr("length %d exceeds u32", n)
	}
	if n > math.MaxInt {
		return 0, 0, decodeErr("length %d exceeds int", n)
	}
	return int(n), w, nil
}

type compactCodec struct{}

// Compact is the compact integer encoding as a standalone value codec.
var Compact Codec[uint64] = compactCodec{}

func (compactCodec) EncodeTo(dst []byte, v uint64) []byte { return AppendCompact(dst, v) }
func (compactCodec) DecodeFrom(src []byte) (uint64, []byte, error) {
	n, w, err := DecodeCompact(src)
	if err != nil {
		return 0, src, err
	}
	return n, src[w:], nil
}
