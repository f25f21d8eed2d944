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

// Package kvcfg reads store settings from a config file and opens the
// configured backend.
package kvcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/erigontech/statevalue/common"
	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/kv/badgerdb"
	"github.com/erigontech/statevalue/kv/kvcache"
	"github.com/erigontech/statevalue/kv/kvmetrics"
	"github.com/erigontech/statevalue/kv/mdbx"
	"github.com/erigontech/statevalue/kv/memdb"
	"github.com/erigontech/statevalue/metrics"
)

const (
	BackendMem    = "mem"
	BackendBadger = "badger"
	BackendMdbx   = "mdbx"
)

var ErrUnknownBackend = errors.New("kvcfg: unknown backend")

type Config struct {
	Backend string `toml:"backend" yaml:"backend"`
	Path    string `toml:"path" yaml:"path"`
	Label   string `toml:"label" yaml:"label"`

	// mdbx only
	MapSize    datasize.ByteSize `toml:"map_size" yaml:"map_size"`
	GrowthStep datasize.ByteSize `toml:"growth_step" yaml:"growth_step"`

	// badger only
	SyncWrites bool `toml:"sync_writes" yaml:"sync_writes"`

	// CacheSize is the number of committed payloads kept in memory; 0 disables the cache.
	CacheSize int  `toml:"cache_size" yaml:"cache_size"`
	Metrics   bool `toml:"metrics" yaml:"metrics"`
}

func DefaultConfig() Config {
	return Config{
		Backend:    BackendMem,
		Label:      "values",
		MapSize:    1 * datasize.GB,
		GrowthStep: 16 * datasize.MB,
		SyncWrites: true,
	}
}

// Load reads a .toml or .yaml file on top of DefaultConfig and validates it.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Read is Load without validation, for callers that override fields before
// validating.
func Read(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch filepath.Ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, errors.New("config files only accepted are .yaml and .toml")
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	switch cfg.Backend {
	case BackendMem:
	case BackendBadger, BackendMdbx:
		if cfg.Path == "" {
			return fmt.Errorf("kvcfg: backend %s needs a path", cfg.Backend)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if cfg.CacheSize < 0 {
		return fmt.Errorf("kvcfg: negative cache_size %d", cfg.CacheSize)
	}
	return nil
}

// Open opens the configured backend and wraps it with the cache and metrics
// layers it asks for. Counters go to set, or to metrics.DefaultSet if nil.
func Open(cfg Config, logger log.Logger, set *metrics.Set) (kv.RwDB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		db  kv.RwDB
		err error
	)
	switch cfg.Backend {
	case BackendMem:
		db = memdb.New(logger)
	case BackendBadger:
		bc := badgerdb.DefaultConfig(cfg.Path)
		bc.SyncWrites = cfg.SyncWrites
		db, err = badgerdb.Open(bc, logger)
	case BackendMdbx:
		opts := mdbx.NewMDBX(logger).Path(cfg.Path).MapSize(cfg.MapSize).GrowthStep(cfg.GrowthStep)
		if cfg.Label != "" {
			opts = opts.Label(cfg.Label)
		}
		db, err = opts.Open()
	}
	if err != nil {
		return nil, err
	}
	if cfg.CacheSize > 0 {
		cached, err := kvcache.New(db, cfg.CacheSize)
		if err != nil {
			db.Close()
			return nil, err
		}
		db = cached
	}
	if cfg.Metrics {
		if set == nil {
			set = metrics.DefaultSet()
		}
		c, err := kvmetrics.NewCounters(set, cfg.Label)
		if err != nil {
			db.Close()
			return nil, err
		}
		db = kvmetrics.WrapDB(db, c)
	}
	if cfg.Backend == BackendMdbx {
		logger.Info("[kv] opened", "backend", cfg.Backend, "path", cfg.Path, "map_size", common.StorageSize(cfg.MapSize.Bytes()), "cache", cfg.CacheSize, "metrics", cfg.Metrics)
	} else {
		logger.Info("[kv] opened", "backend", cfg.Backend, "path", cfg.Path, "cache", cfg.CacheSize, "metrics", cfg.Metrics)
	}
	return db, nil
}
