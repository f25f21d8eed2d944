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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCounterValues(t *testing.T) {
	set := NewSet(prometheus.NewRegistry())
	c, err := set.GetOrCreateCounter("kv_reads", prometheus.Labels{"db": "a"})
	require.NoError(t, err)

	c.Add(5)
	c.Inc()
	require.Equal(t, uint64(6), c.Value())
	require.Equal(t, float64(6), testutil.ToFloat64(c))
}

func TestGetOrCreateCounterReuses(t *testing.T) {
	set := NewSet(prometheus.NewRegistry())
	a, err := set.GetOrCreateCounter("kv_writes", prometheus.Labels{"db": "a", "x": "1"})
	require.NoError(t, err)
	b, err := set.GetOrCreateCounter("kv_writes", prometheus.Labels{"x": "1", "db": "a"})
	require.NoError(t, err)
	require.Same(t, a, b)

	other, err := set.GetOrCreateCounter("kv_writes", prometheus.Labels{"db": "b", "x": "1"})
	require.NoError(t, err)
	require.NotSame(t, a, other)
}
