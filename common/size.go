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

package common

import (
	"fmt"
)

// StorageSize is a byte count that formats with a binary unit.
type StorageSize float64

func (s StorageSize) String() string {
	return formatStorageSize(s, true)
}

// TerminalString implements log.TerminalStringer, formatting a string for console
// output during logging.
func (s StorageSize) TerminalString() string {
	return formatStorageSize(s, false)
}

func formatStorageSize(s StorageSize, addSpace bool) string {
	value := float64(s)
	unit := "B"

	switch {
	case s >= 1<<40:
		value /= 1 << 40
		unit = "TiB"
	case s >= 1<<30:
		value /= 1 << 30
		unit = "GiB"
	case s >= 1<<20:
		value /= 1 << 20
		unit = "MiB"
	case s >= 1<<10:
		value /= 1 << 10
		unit = "KiB"
	}

	if addSpace {
		return fmt.Sprintf("%.2f %s", value, unit)
	}
	return fmt.Sprintf("%.2f%s", value, unit)
}
