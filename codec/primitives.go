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

	"github.com/holiman/uint256"
)

type (
	boolCodec    struct{}
	u8Codec      struct{}
	u16Codec     struct{}
	u32Codec     struct{}
	u64Codec     struct{}
	bytesCodec   struct{}
	stringCodec  struct{}
	uint256Codec struct{}
	unitCodec    struct{}
)

var (
	Bool    Codec[bool]        = boolCodec{}
	U8      Codec[uint8]       = u8Codec{}
	U16     Codec[uint16]      = u16Codec{}
	U32     Codec[uint32]      = u32Codec{}
	U64     Codec[uint64]      = u64Codec{}
	Bytes   Codec[[]byte]      = bytesCodec{}
	String  Codec[string]      = stringCodec{}
	Uint256 Codec[uint256.Int] = uint256Codec{}
	// Unit encodes to zero bytes.
	Unit Codec[struct{}] = unitCodec{}
)

func (boolCodec) EncodeTo(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func (boolCodec) DecodeFrom(src []byte) (bool, []byte, error) {
	if len(src) < 1 {
		return false, src, shortInput("bool", 1, 0)
	}
	switch src[0] {
	case 0:
		return false, src[1:], nil
	case 1:
		return true, src[1:], nil
	}
	return false, src, decodeErr("bool: invalid byte 0x%02x", src[0])
}

func (u8Codec) EncodeTo(dst []byte, v uint8) []byte { return append(dst, v) }
func (u8Codec) DecodeFrom(src []byte) (uint8, []byte, error) {
	if len(src) < 1 {
		return 0, src, shortInput("u8", 1, 0)
	}
	return src[0], src[1:], nil
}

func (u16Codec) EncodeTo(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}
func (u16Codec) DecodeFrom(src []byte) (uint16, []byte, error) {
	if len(src) < 2 {
		return 0, src, shortInput("u16", 2, len(src))
	}
	return binary.LittleEndian.Uint16(src), src[2:], nil
}

func (u32Codec) EncodeTo(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}
func (u32Codec) DecodeFrom(src []byte) (uint32, []byte, error) {
	if len(src) < 4 {
		return 0, src, shortInput("u32", 4, len(src))
	}
	return binary.LittleEndian.Uint32(src), src[4:], nil
}

func (u64Codec) EncodeTo(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}
func (u64Codec) DecodeFrom(src []byte) (uint64, []byte, error) {
	if len(src) < 8 {
		return 0, src, shortInput("u64", 8, len(src))
	}
	return binary.LittleEndian.Uint64(src), src[8:], nil
}

func (bytesCodec) EncodeTo(dst []byte, v []byte) []byte {
	dst = AppendCompact(dst, uint64(len(v)))
	return append(dst, v...)
}
func (bytesCodec) DecodeFrom(src []byte) ([]byte, []byte, error) {
	n, w, err := decodeCount(src)
	if err != nil {
		return nil, src, err
	}
	if len(src)-w < n {
		return nil, src, shortInput("bytes", n, len(src)-w)
	}
	out := make([]byte, n)
	copy(out, src[w:w+n])
	return out, src[w+n:], nil
}

func (stringCodec) EncodeTo(dst []byte, v string) []byte {
	dst = AppendCompact(dst, uint64(len(v)))
	return append(dst, v...)
}
func (stringCodec) DecodeFrom(src []byte) (string, []byte, error) {
	b, rest, err := bytesCodec{}.DecodeFrom(src)
	if err != nil {
		return "", src, err
	}
	return string(b), rest, nil
}

// uint256 is stored as 32 little-endian bytes.
func (uint256Codec) EncodeTo(dst []byte, v uint256.Int) []byte {
	for i := 0; i < 4; i++ {
		dst = binary.LittleEndian.AppendUint64(dst, v[i])
	}
	return dst
}
func (uint256Codec) DecodeFrom(src []byte) (uint256.Int, []byte, error) {
	var v uint256.Int
	if len(src) < 32 {
		return v, src, shortInput("u256", 32, len(src))
	}
	for i := 0; i < 4; i++ {
		v[i] = binary.LittleEndian.Uint64(src[8*i:])
	}
	return v, src[32:], nil
}

func (unitCodec) EncodeTo(dst []byte, _ struct{}) []byte { return dst }
func (unitCodec) DecodeFrom(src []byte) (struct{}, []byte, error) {
	return struct{}{}, src, nil
}
