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

package badgerdb

import (
	"context"
	"testing"

	"github.com/ledgerwatch/log/v3"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/kv/kvtest"
)

func newTestDB(tb testing.TB) kv.RwDB {
	tb.Helper()
	db, err := Open(InMemoryConfig(), log.New())
	require.NoError(tb, err)
	tb.Cleanup(db.Close)
	return db
}

func TestConformance(t *testing.T) {
	kvtest.RunConformance(t, newTestDB)
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := Open(DefaultConfig(dir), log.New())
	require.NoError(t, err)
	require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
		tx.Put([]byte("key"), []byte("value"))
		return nil
	}))
	db.Close()

	db, err = Open(DefaultConfig(dir), log.New())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, kv.Update(ctx, db, func(tx kv.RwTx) error {
		v, ok := tx.Get([]byte("key"))
		require.True(t, ok)
		require.Equal(t, []byte("value"), v)
		return nil
	}))
}

func TestStickyError(t *testing.T) {
	db := newTestDB(t)
	tx, err := db.BeginRw(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	tx.Put(nil, []byte("v")) // badger rejects empty keys
	require.Error(t, tx.Err())

	tx.Put([]byte("k"), []byte("v"))
	require.False(t, tx.Has([]byte("k")))
	require.ErrorIs(t, tx.Commit(), tx.Err())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{}, log.New())
	require.Error(t, err)
}
