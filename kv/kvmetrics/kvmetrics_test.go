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

package kvmetrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/kv/kvtest"
	"github.com/erigontech/statevalue/kv/memdb"
	"github.com/erigontech/statevalue/metrics"
)

func TestConformance(t *testing.T) {
	set := metrics.NewSet(prometheus.NewRegistry())
	kvtest.RunConformance(t, func(tb testing.TB) kv.RwDB {
		c, err := NewCounters(set, "conformance")
		require.NoError(tb, err)
		return WrapDB(memdb.NewTestDB(tb), c)
	})
}

func TestCounts(t *testing.T) {
	c, err := NewCounters(metrics.NewSet(prometheus.NewRegistry()), "test")
	require.NoError(t, err)
	db := WrapDB(memdb.NewTestDB(t), c)

	require.NoError(t, kv.Update(context.Background(), db, func(tx kv.RwTx) error {
		tx.Has([]byte("a"))
		tx.Put([]byte("a"), []byte{0})
		tx.Get([]byte("a"))
		tx.Append([]byte("b"), []byte{1})
		tx.Delete([]byte("a"))
		return nil
	}))

	require.Equal(t, uint64(2), c.Reads.Value())
	require.Equal(t, uint64(1), c.Misses.Value())
	require.Equal(t, uint64(1), c.Writes.Value())
	require.Equal(t, uint64(1), c.Appends.Value())
	require.Equal(t, uint64(1), c.Deletes.Value())
}
