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

package mdbx

import (
	"context"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/kv/kvtest"
)

func BaseCase(t *testing.T) (*MdbxKV, kv.RwTx) {
	t.Helper()
	db := NewMDBX(log.New()).InMem(t.TempDir()).MapSize(16 * datasize.MB).MustOpen()
	t.Cleanup(db.Close)

	tx, err := db.BeginRw(context.Background())
	require.NoError(t, err)
	tx.Put([]byte("key1"), []byte("value1.1"))
	tx.Put([]byte("key3"), []byte("value3.1"))
	return db, tx
}

func TestConformance(t *testing.T) {
	kvtest.RunConformance(t, func(tb testing.TB) kv.RwDB {
		db := NewMDBX(log.New()).InMem(tb.TempDir()).MapSize(16 * datasize.MB).MustOpen()
		tb.Cleanup(db.Close)
		return db
	})
}

func TestHasDelete(t *testing.T) {
	_, tx := BaseCase(t)
	defer tx.Rollback()

	tx.Delete([]byte("key1"))
	tx.Delete([]byte("key1")) //valid but already deleted
	tx.Delete([]byte("key2")) //never existed

	require.False(t, tx.Has([]byte("key1")))
	require.False(t, tx.Has([]byte("key2")))
	require.True(t, tx.Has([]byte("key3")))
	require.NoError(t, tx.Err())
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db := NewMDBX(log.New()).Path(dir).MapSize(16 * datasize.MB).MustOpen()
	require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
		tx.Put([]byte("key"), []byte("value"))
		return nil
	}))
	db.Close()

	db = NewMDBX(log.New()).Path(dir).MapSize(16 * datasize.MB).MustOpen()
	defer db.Close()
	require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
		v, ok := tx.Get([]byte("key"))
		require.True(t, ok)
		require.Equal(t, []byte("value"), v)
		return nil
	}))
}

func TestStickyError(t *testing.T) {
	_, tx := BaseCase(t)
	defer tx.Rollback()

	tx.Put([]byte{}, []byte("v")) // zero-length keys are rejected
	require.Error(t, tx.Err())
	require.False(t, tx.Has([]byte("key1")))
	require.Error(t, tx.Commit())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := NewMDBX(log.New()).Open()
	require.Error(t, err)
}
