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

package memdb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ledgerwatch/log/v3"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/kv/kvtest"
)

func TestConformance(t *testing.T) {
	kvtest.RunConformance(t, func(tb testing.TB) kv.RwDB { return NewTestDB(tb) })
}

func TestSingleWriter(t *testing.T) {
	db := NewTestDB(t)
	tx, err := db.BeginRw(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	started := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(started)
		tx2, err := db.BeginRw(context.Background())
		if err != nil {
			return
		}
		defer tx2.Rollback()
		v, _ := tx2.Get([]byte("k"))
		if string(v) != "first" {
			t.Errorf("second writer saw %q", v)
		}
	}()
	<-started
	time.Sleep(10 * time.Millisecond)
	tx.Put([]byte("k"), []byte("first"))
	require.NoError(t, tx.Commit())
	wg.Wait()
}

func TestUncommittedInvisible(t *testing.T) {
	db := New(log.New())
	defer db.Close()

	tx, err := db.BeginRw(context.Background())
	require.NoError(t, err)
	tx.Put([]byte("k"), []byte("v"))
	require.Equal(t, 0, db.Len())
	require.NoError(t, tx.Commit())
	require.Equal(t, 1, db.Len())
}

func TestClosed(t *testing.T) {
	db := New(log.New())
	db.Close()
	_, err := db.BeginRw(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}
