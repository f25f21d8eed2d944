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

// Package kvtest holds the behaviour every kv.RwDB backend must share.
package kvtest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/kv"
)

// RunConformance runs the backend suite against databases produced by open.
// Each subtest gets a fresh database.
func RunConformance(t *testing.T, open func(tb testing.TB) kv.RwDB) {
	t.Helper()
	ctx := context.Background()
	k1 := []byte("0123456789abcdef0123456789abcdef")
	k2 := []byte("fedcba9876543210fedcba9876543210")

	t.Run("put get has delete", func(t *testing.T) {
		db := open(t)
		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			require.False(t, tx.Has(k1))
			_, ok := tx.Get(k1)
			require.False(t, ok)

			tx.Put(k1, []byte("v1"))
			require.True(t, tx.Has(k1))
			v, ok := tx.Get(k1)
			require.True(t, ok)
			require.Equal(t, []byte("v1"), v)

			tx.Put(k1, []byte("v2"))
			v, _ = tx.Get(k1)
			require.Equal(t, []byte("v2"), v)

			tx.Delete(k1)
			require.False(t, tx.Has(k1))
			tx.Delete(k1) // idempotent
			require.False(t, tx.Has(k1))
			return tx.Err()
		}))
	})

	t.Run("empty payload is present", func(t *testing.T) {
		db := open(t)
		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			tx.Put(k1, []byte{})
			require.True(t, tx.Has(k1))
			v, ok := tx.Get(k1)
			require.True(t, ok)
			require.Empty(t, v)
			return tx.Err()
		}))
	})

	t.Run("returned payload is a copy", func(t *testing.T) {
		db := open(t)
		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			in := []byte("abc")
			tx.Put(k1, in)
			in[0] = 'x'
			v, _ := tx.Get(k1)
			require.Equal(t, []byte("abc"), v)
			v[1] = 'y'
			v2, _ := tx.Get(k1)
			require.Equal(t, []byte("abc"), v2)
			return tx.Err()
		}))
	})

	t.Run("commit persists and rollback discards", func(t *testing.T) {
		db := open(t)
		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			tx.Put(k1, []byte("kept"))
			return nil
		}))

		errBoom := errors.New("boom")
		err := kv.Update(ctx, db, func(tx kv.RwTx) error {
			tx.Put(k2, []byte("dropped"))
			tx.Delete(k1)
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			v, ok := tx.Get(k1)
			require.True(t, ok)
			require.Equal(t, []byte("kept"), v)
			require.False(t, tx.Has(k2))
			return nil
		}))
	})

	t.Run("append builds a sequence", func(t *testing.T) {
		db := open(t)
		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			for i := uint32(0); i < 65; i++ {
				tx.Append(k1, codec.Encode(codec.U32, i))
			}
			return tx.Err()
		}))
		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			v, ok := tx.Get(k1)
			require.True(t, ok)
			items, err := codec.Decode(codec.Vec(codec.U32), v)
			require.NoError(t, err)
			require.Len(t, items, 65)
			require.Equal(t, uint32(64), items[64])
			return nil
		}))
	})

	t.Run("append over malformed prefix resets", func(t *testing.T) {
		db := open(t)
		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			tx.Put(k1, []byte{0x01, 0x00, 0xff})
			tx.Append(k1, []byte{0x2a})
			v, _ := tx.Get(k1)
			require.Equal(t, []byte{0x04, 0x2a}, v)
			return tx.Err()
		}))
	})

	t.Run("rollback after commit is safe", func(t *testing.T) {
		db := open(t)
		tx, err := db.BeginRw(ctx)
		require.NoError(t, err)
		tx.Put(k1, []byte("v"))
		require.NoError(t, tx.Commit())
		tx.Rollback()

		tx, err = db.BeginRw(ctx)
		require.NoError(t, err)
		defer tx.Rollback()
		require.True(t, tx.Has(k1))
	})

	t.Run("cancelled context", func(t *testing.T) {
		db := open(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := db.BeginRw(cctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("writers are serialized", func(t *testing.T) {
		db := open(t)
		const writers = 8
		var g errgroup.Group
		for i := 0; i < writers; i++ {
			g.Go(func() error {
				return kv.Update(ctx, db, func(tx kv.RwTx) error {
					tx.Append(k2, []byte{byte(i)})
					return tx.Err()
				})
			})
		}
		require.NoError(t, g.Wait())

		require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
			v, ok := tx.Get(k2)
			require.True(t, ok)
			items, err := codec.Decode[[]uint8](codec.Vec(codec.U8), v)
			require.NoError(t, err)
			require.ElementsMatch(t, []uint8{0, 1, 2, 3, 4, 5, 6, 7}, items)
			return nil
		}))
	})
}
