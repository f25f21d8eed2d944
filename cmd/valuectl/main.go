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
	"os"

	"github.com/ledgerwatch/log/v3"
	"github.com/urfave/cli/v2"

	"github.com/erigontech/statevalue/common/dbg"
	"github.com/erigontech/statevalue/turbo/logging"
)

func main() {
	defer func() {
		panicResult := recover()
		if panicResult == nil {
			return
		}
		log.Error("catch panic", "err", panicResult, "stack", dbg.Stack())
		os.Exit(1)
	}()

	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "valuectl",
		Usage: "Inspect and edit declared values in a store",
		Flags: append([]cli.Flag{
			configFlag,
			backendFlag,
			dataDirFlag,
			cacheSizeFlag,
			metricsFlag,
		}, logging.Flags...),
		Before: func(ctx *cli.Context) error {
			logging.SetupLoggerCtx("valuectl", ctx)
			return nil
		},
		Commands: []*cli.Command{
			keyCmd,
			listCmd,
			getCmd,
			lenCmd,
			putCmd,
			killCmd,
			appendCmd,
			accountsCmd,
		},
	}
}
