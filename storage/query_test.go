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

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/storage"
)

// For every payload that decodes, ToOptional(FromOptional(x)) gives back x.
func TestQueryRoundTrip(t *testing.T) {
	t.Parallel()
	values := []uint32{0, 1, 7, 1 << 31}

	check := func(t *testing.T, q storage.QueryAdapter[uint32, uint32]) {
		t.Helper()
		for _, v := range values {
			payload := codec.Encode(codec.U32, v)
			decoded, err := codec.Decode(codec.U32, payload)
			require.NoError(t, err)
			q1 := q.FromOptional(decoded, true)
			got, ok := q.ToOptional(q1)
			again, ok2 := q.ToOptional(q.FromOptional(got, ok))
			require.Equal(t, ok, ok2)
			require.Equal(t, got, again)
		}
	}
	check(t, storage.ValueQuery[uint32]{Default: 7})
	check(t, storage.ElideDefault[uint32]{Default: 7})

	opt := storage.OptionQuery[uint32]{}
	for _, v := range values {
		got, ok := opt.ToOptional(opt.FromOptional(v, true))
		require.True(t, ok)
		require.Equal(t, v, got)
	}
	_, ok := opt.ToOptional(opt.FromOptional(0, false))
	require.False(t, ok)
}

func TestElide(t *testing.T) {
	t.Parallel()
	d := storage.ElideDefault[uint32]{Default: 7}
	require.Equal(t, uint32(7), d.FromOptional(0, false))
	_, ok := d.ToOptional(7)
	require.False(t, ok)
	v, ok := d.ToOptional(8)
	require.True(t, ok)
	require.Equal(t, uint32(8), v)

	e := storage.ElideEmpty[uint16]{}
	require.Nil(t, e.FromOptional(nil, false))
	_, ok = e.ToOptional([]uint16{})
	require.False(t, ok)
	s, ok := e.ToOptional([]uint16{1})
	require.True(t, ok)
	require.Equal(t, []uint16{1}, s)
}

func TestQueryFuncs(t *testing.T) {
	t.Parallel()
	// absent reads as -1; negative values free the slot
	q := storage.QueryFuncs[uint32, int64]{
		From: func(v uint32, ok bool) int64 {
			if !ok {
				return -1
			}
			return int64(v)
		},
		To: func(q int64) (uint32, bool) {
			if q < 0 {
				return 0, false
			}
			return uint32(q), true
		},
	}
	require.Equal(t, int64(-1), q.FromOptional(0, false))
	require.Equal(t, int64(5), q.FromOptional(5, true))
	_, ok := q.ToOptional(-3)
	require.False(t, ok)
	v, ok := q.ToOptional(9)
	require.True(t, ok)
	require.Equal(t, uint32(9), v)
}
