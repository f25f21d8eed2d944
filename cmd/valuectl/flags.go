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

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledgerwatch/log/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/kv/kvcfg"
	"github.com/erigontech/statevalue/metrics"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Store settings from a .toml or .yaml file; flags override it",
	}
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Store backend: mem, badger or mdbx",
		Value: kvcfg.BackendMdbx,
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Store directory",
	}
	cacheSizeFlag = &cli.IntFlag{
		Name:  "cache.size",
		Usage: "Number of committed payloads to keep in memory",
	}
	metricsFlag = &cli.BoolFlag{
		Name:  "metrics",
		Usage: "Print kv operation counters on exit",
	}
)

// storeConfig resolves the store settings: defaults, then the config file,
// then flags the user set explicitly.
func storeConfig(ctx *cli.Context) (kvcfg.Config, error) {
	cfg := kvcfg.DefaultConfig()
	cfg.Backend = backendFlag.Value
	if p := ctx.String(configFlag.Name); p != "" {
		var err error
		if cfg, err = kvcfg.Read(p); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(backendFlag.Name) {
		cfg.Backend = ctx.String(backendFlag.Name)
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.Path = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(cacheSizeFlag.Name) {
		cfg.CacheSize = ctx.Int(cacheSizeFlag.Name)
	}
	if ctx.IsSet(metricsFlag.Name) {
		cfg.Metrics = ctx.Bool(metricsFlag.Name)
	}
	return cfg, cfg.Validate()
}

// withTx opens the store, runs f in one write transaction and commits.
func withTx(ctx *cli.Context, f func(tx kv.RwTx) error) error {
	cfg, err := storeConfig(ctx)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	db, err := kvcfg.Open(cfg, log.Root(), metrics.NewSet(reg))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if err := kv.Update(ctx.Context, db, f); err != nil {
		return err
	}
	if cfg.Metrics {
		return printCounters(ctx.App.Writer, reg)
	}
	return nil
}

func printCounters(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %v", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
