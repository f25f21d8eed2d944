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

// Package dbg holds environment-driven knobs for debugging and experiments.
// Each variable is read once, on first use.
package dbg

import (
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/ledgerwatch/log/v3"
)

func envBool(name string) func() bool {
	return sync.OnceValue(func() bool {
		v, _ := os.LookupEnv(name)
		on := v == "true"
		if on {
			log.Info("[Experiment]", name, on)
		}
		return on
	})
}

func envDuration(name string) func() time.Duration {
	return sync.OnceValue(func() time.Duration {
		v, _ := os.LookupEnv(name)
		if v == "" {
			return 0
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		log.Info("[Experiment]", name, d.String())
		return d
	})
}

var (
	// NoSync makes persistent backends skip fsync on commit.
	NoSync = envBool("NO_SYNC")

	// MdbxReadAhead enables OS readahead on the mdbx memory map.
	MdbxReadAhead = envBool("MDBX_READAHEAD")

	// SlowCommit is the commit duration above which backends log the commit.
	SlowCommit = envDuration("SLOW_COMMIT")
)

// Stack returns the current goroutine's stack on one line.
func Stack() string {
	return strings.ReplaceAll(string(debug.Stack()), "\n", " ")
}
