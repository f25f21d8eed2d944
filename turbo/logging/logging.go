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

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ledgerwatch/log/v3"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options is the resolved logging setup.
type Options struct {
	FilePrefix   string
	DirPath      string
	ConsoleLevel log.Lvl
	DirLevel     log.Lvl
	ConsoleJson  bool
	DirJson      bool
}

// SetupLoggerCtx configures the root logger from the logging flags and
// returns it. With --log.dir.path empty, logs go under <datadir>/logs when
// a datadir flag is set.
func SetupLoggerCtx(filePrefix string, ctx *cli.Context) log.Logger {
	opts := OptionsFromCtx(filePrefix, ctx)
	return Setup(os.Stderr, opts)
}

func OptionsFromCtx(filePrefix string, ctx *cli.Context) Options {
	opts := Options{
		FilePrefix:  filePrefix,
		ConsoleJson: ctx.Bool(LogJsonFlag.Name) || ctx.Bool(LogConsoleJsonFlag.Name),
		DirJson:     ctx.Bool(LogDirJsonFlag.Name),
		DirPath:     ctx.String(LogDirPathFlag.Name),
	}

	lvl := ctx.String(LogConsoleVerbosityFlag.Name)
	if !ctx.IsSet(LogConsoleVerbosityFlag.Name) && ctx.IsSet(LogVerbosityFlag.Name) {
		lvl = ctx.String(LogVerbosityFlag.Name)
	}
	var err error
	if opts.ConsoleLevel, err = tryGetLogLevel(lvl); err != nil {
		opts.ConsoleLevel = log.LvlInfo
	}

	opts.DirLevel, err = tryGetLogLevel(ctx.String(LogDirVerbosityFlag.Name))
	if err != nil {
		opts.DirLevel = log.LvlInfo
	}

	if opts.DirPath == "" {
		if datadir := ctx.String("datadir"); datadir != "" {
			opts.DirPath = filepath.Join(datadir, "logs")
		}
	}
	return opts
}

// Setup points the root logger at console and, if opts.DirPath is set, at
// a rotated file in that directory.
func Setup(console io.Writer, opts Options) log.Logger {
	logger := log.Root()

	switch {
	case opts.ConsoleJson:
		logger.SetHandler(log.LvlFilterHandler(opts.ConsoleLevel, log.StreamHandler(console, log.JsonFormat())))
	case console == os.Stderr:
		logger.SetHandler(log.LvlFilterHandler(opts.ConsoleLevel, log.StderrHandler))
	default:
		logger.SetHandler(log.LvlFilterHandler(opts.ConsoleLevel, log.StreamHandler(console, log.TerminalFormatNoColor())))
	}

	if len(opts.DirPath) == 0 {
		logger.Debug("no log dir set, console logging only")
		return logger
	}

	if err := os.MkdirAll(opts.DirPath, 0764); err != nil {
		logger.Warn("failed to create log dir, console logging only", "err", err)
		return logger
	}

	dirFormat := log.TerminalFormatNoColor()
	if opts.DirJson {
		dirFormat = log.JsonFormat()
	}

	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(opts.DirPath, opts.FilePrefix+".log"),
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, //days
	}
	userLog := log.StreamHandler(rotated, dirFormat)

	mux := log.MultiHandler(logger.GetHandler(), log.LvlFilterHandler(opts.DirLevel, userLog))
	logger.SetHandler(mux)
	logger.Info("logging to file system", "log dir", opts.DirPath, "file prefix", opts.FilePrefix, "log level", opts.DirLevel, "json", opts.DirJson)
	return logger
}

func tryGetLogLevel(s string) (log.Lvl, error) {
	lvl, err := log.LvlFromString(s)
	if err != nil {
		l, err := strconv.Atoi(s)
		if err != nil {
			return 0, err
		}
		return log.Lvl(l), nil
	}
	return lvl, nil
}
