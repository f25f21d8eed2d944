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

package kvcfg_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/kv/kvcfg"
	"github.com/erigontech/statevalue/metrics"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadToml(t *testing.T) {
	p := writeFile(t, "kv.toml", `
backend = "mdbx"
path = "/var/lib/values"
map_size = "2GB"
cache_size = 128
metrics = true
`)
	cfg, err := kvcfg.Load(p)
	require.NoError(t, err)
	require.Equal(t, kvcfg.BackendMdbx, cfg.Backend)
	require.Equal(t, "/var/lib/values", cfg.Path)
	require.Equal(t, 2*datasize.GB, cfg.MapSize)
	require.Equal(t, 16*datasize.MB, cfg.GrowthStep)
	require.Equal(t, 128, cfg.CacheSize)
	require.True(t, cfg.Metrics)
	require.Equal(t, "values", cfg.Label)
}

func TestLoadYaml(t *testing.T) {
	p := writeFile(t, "kv.yaml", "backend: badger\npath: /tmp/x\nsync_writes: false\n")
	cfg, err := kvcfg.Load(p)
	require.NoError(t, err)
	require.Equal(t, kvcfg.BackendBadger, cfg.Backend)
	require.False(t, cfg.SyncWrites)
}

func TestLoadErrors(t *testing.T) {
	_, err := kvcfg.Load(writeFile(t, "kv.toml", `backend = "rocks"`))
	require.ErrorIs(t, err, kvcfg.ErrUnknownBackend)

	_, err = kvcfg.Load(writeFile(t, "kv.toml", `backend = "mdbx"`))
	require.ErrorContains(t, err, "needs a path")

	_, err = kvcfg.Load(writeFile(t, "kv.json", `{}`))
	require.Error(t, err)

	_, err = kvcfg.Load(writeFile(t, "kv.toml", `backend = `))
	require.Error(t, err)

	_, err = kvcfg.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSkipsValidation(t *testing.T) {
	p := writeFile(t, "kv.toml", `backend = "badger"`)
	cfg, err := kvcfg.Read(p)
	require.NoError(t, err)
	require.Equal(t, kvcfg.BackendBadger, cfg.Backend)
	require.Error(t, cfg.Validate())

	cfg.Path = t.TempDir()
	require.NoError(t, cfg.Validate())

	_, err = kvcfg.Load(p)
	require.ErrorContains(t, err, "needs a path")
}

func TestOpenLayers(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := kvcfg.DefaultConfig()
	cfg.CacheSize = 16
	cfg.Metrics = true
	cfg.Label = "test"

	db, err := kvcfg.Open(cfg, log.New(), metrics.NewSet(reg))
	require.NoError(t, err)
	defer db.Close()

	err = kv.Update(context.Background(), db, func(tx kv.RwTx) error {
		tx.Put([]byte("k"), []byte("v"))
		return nil
	})
	require.NoError(t, err)

	err = kv.Update(context.Background(), db, func(tx kv.RwTx) error {
		v, ok := tx.Get([]byte("k"))
		require.True(t, ok)
		require.Equal(t, []byte("v"), v)
		return nil
	})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "kv_writes_total", "kv_reads_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestOpenBadger(t *testing.T) {
	cfg := kvcfg.DefaultConfig()
	cfg.Backend = kvcfg.BackendBadger
	cfg.Path = t.TempDir()
	db, err := kvcfg.Open(cfg, log.New(), nil)
	require.NoError(t, err)
	db.Close()
}

func TestOpenUnknown(t *testing.T) {
	cfg := kvcfg.DefaultConfig()
	cfg.Backend = "bolt"
	_, err := kvcfg.Open(cfg, log.New(), nil)
	require.ErrorIs(t, err, kvcfg.ErrUnknownBackend)
}
