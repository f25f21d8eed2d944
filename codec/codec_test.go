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
	"math"
	"strconv"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/statevalue/common/hex"
)

func decodeHex(in string) []byte { return hex.MustDecodeString(in) }

var compactTests = []struct {
	value   uint64
	payload []byte
}{
	{value: 0, payload: decodeHex("00")},
	{value: 1, payload: decodeHex("04")},
	{value: 42, payload: decodeHex("a8")},
	{value: 63, payload: decodeHex("fc")},
	{value: 64, payload: decodeHex("0101")},
	{value: 69, payload: decodeHex("1501")},
	{value: 16383, payload: decodeHex("fdff")},
	{value: 16384, payload: decodeHex("02000100")},
	{value: 65535, payload: decodeHex("feff0300")},
	{value: 1<<30 - 1, payload: decodeHex("feffffff")},
	{value: 1 << 30, payload: decodeHex("0300000040")},
	{value: math.MaxUint32, payload: decodeHex("03ffffffff")},
	{value: 1 << 32, payload: decodeHex("070000000001")},
	{value: math.MaxUint64, payload: decodeHex("13ffffffffffffffff")},
}

func TestCompact(t *testing.T) {
	for _, tt := range compactTests {
		got := AppendCompact(nil, tt.value)
		assert.Equal(t, tt.payload, got, "encode %d", tt.value)
		assert.Equal(t, len(tt.payload), CompactLen(tt.value), "len %d", tt.value)

		n, w, err := DecodeCompact(append(tt.payload, 0xaa))
		require.NoError(t, err, "decode %d", tt.value)
		assert.Equal(t, tt.value, n)
		assert.Equal(t, len(tt.payload), w)
	}
}

func TestCompactRejectsNonCanonical(t *testing.T) {
	for _, in := range []string{
		"0100",                 // 0 in two-byte mode
		"fd00",                 // 63 in two-byte mode
		"02000000",             // 0 in four-byte mode
		"feff0000",             // 16383 in four-byte mode
		"03ffffff3f",           // 2^30-1 in big mode
		"070000004000",         // most significant byte is zero
		"17ffffffffffffffffff", // nine bytes
	} {
		_, _, err := DecodeCompact(decodeHex(in))
		require.ErrorIs(t, err, ErrDecode, in)
	}
}

func TestCompactShortInput(t *testing.T) {
	for _, in := range []string{"", "01", "020000", "03ffff"} {
		_, _, err := DecodeCompact(decodeHex(in))
		require.ErrorIs(t, err, ErrShortInput, in)
	}
}

func TestPrimitives(t *testing.T) {
	require.Equal(t, decodeHex("2a000000"), Encode(U32, 42))
	require.Equal(t, decodeHex("2a00000000000000"), Encode(U64, 42))
	require.Equal(t, decodeHex("0100"), Encode(U16, 1))
	require.Equal(t, decodeHex("01"), Encode(Bool, true))
	require.Equal(t, decodeHex("0c616263"), Encode(String, "abc"))
	require.Equal(t, decodeHex("08beef"), Encode(Bytes, []byte{0xbe, 0xef}))
	require.Empty(t, Encode(Unit, struct{}{}))

	v, err := Decode(U64, decodeHex("2a00000000000000"))
	require.NoError(t, err)
	require.Equal(t, uint64(42), v)

	s, err := Decode(String, decodeHex("0c616263"))
	require.NoError(t, err)
	require.Equal(t, "abc", s)

	_, err = Decode(Bool, decodeHex("02"))
	require.ErrorIs(t, err, ErrDecode)

	_, err = Decode(U32, decodeHex("2a0000"))
	require.ErrorIs(t, err, ErrShortInput)

	_, err = Decode(U32, decodeHex("2a00000000"))
	require.ErrorIs(t, err, ErrTrailingBytes)
	require.ErrorIs(t, err, ErrDecode)

	_, err = Decode(Bytes, decodeHex("10beef"))
	require.ErrorIs(t, err, ErrShortInput)
}

func TestUint256LittleEndian(t *testing.T) {
	v := uint256.NewInt(0x0102)
	enc := Encode(Uint256, *v)
	require.Len(t, enc, 32)
	require.Equal(t, byte(0x02), enc[0])
	require.Equal(t, byte(0x01), enc[1])

	allOnes := new(uint256.Int).SetAllOne()
	got, err := Decode(Uint256, Encode(Uint256, *allOnes))
	require.NoError(t, err)
	require.True(t, got.Eq(allOnes))
}

func TestVec(t *testing.T) {
	c := Vec(U16)
	enc := Encode(c, []uint16{1, 2, 3})
	require.Equal(t, decodeHex("0c010002000300"), enc)

	got, err := Decode(c, enc)
	require.NoError(t, err)
	require.Equal(t, []uint16{1, 2, 3}, got)

	n, err := DecodeLen(enc)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	empty := Encode(c, nil)
	require.Equal(t, decodeHex("00"), empty)
	got, err = Decode(c, empty)
	require.NoError(t, err)
	require.Empty(t, got)

	_, err = Decode(c, decodeHex("0c01000200"))
	require.ErrorIs(t, err, ErrShortInput)
}

func TestVecOfZeroSizedItems(t *testing.T) {
	c := Vec(Unit)
	enc := Encode(c, make([]struct{}, 1000))
	require.Equal(t, decodeHex("a10f"), enc)
	got, err := Decode(c, enc)
	require.NoError(t, err)
	require.Len(t, got, 1000)
}

func TestDecodeLenErrors(t *testing.T) {
	_, err := DecodeLen(nil)
	require.ErrorIs(t, err, ErrLength)
	_, err = DecodeLen(decodeHex("0100"))
	require.ErrorIs(t, err, ErrLength)
	require.Contains(t, err.Error(), "non-canonical")
	_, err = DecodeLen(decodeHex("070000000001"))
	require.ErrorIs(t, err, ErrLength)
	require.Contains(t, err.Error(), "exceeds u32")
}

// A u32::MAX length prefix must not turn negative where int is 32 bits.
func TestMaxU32LengthPrefix(t *testing.T) {
	prefix := decodeHex("03ffffffff")

	n, err := DecodeLen(prefix)
	if strconv.IntSize == 32 {
		require.ErrorIs(t, err, ErrLength)
	} else {
		require.NoError(t, err)
		require.Equal(t, uint64(math.MaxUint32), uint64(n))
	}
	require.GreaterOrEqual(t, n, 0)

	require.NotPanics(t, func() {
		_, err := Decode(Bytes, prefix)
		require.ErrorIs(t, err, ErrDecode)
	})
	require.NotPanics(t, func() {
		_, err := Decode[[]uint8](Vec(U8), append(prefix, 1, 2))
		require.ErrorIs(t, err, ErrDecode)
	})
	require.NotPanics(t, func() {
		out, reset := AppendOrNew(prefix, true, []byte{7})
		require.True(t, reset)
		require.Equal(t, decodeHex("0407"), out)
	})
}

func TestOption(t *testing.T) {
	c := Option(U32)
	require.Equal(t, decodeHex("00"), Encode(c, nil))
	x := uint32(7)
	require.Equal(t, decodeHex("0107000000"), Encode(c, &x))

	got, err := Decode(c, decodeHex("0107000000"))
	require.NoError(t, err)
	require.Equal(t, uint32(7), *got)

	got, err = Decode(c, decodeHex("00"))
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = Decode(c, decodeHex("02"))
	require.ErrorIs(t, err, ErrDecode)
}
