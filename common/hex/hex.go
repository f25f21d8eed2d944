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

package hex

import (
	"encoding/hex"
	"strings"
)

// Decode reads hex with or without a 0x prefix.
func Decode(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// Encode renders b as 0x-prefixed lowercase hex.
func Encode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

func MustDecodeString(s string) []byte {
	r, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return r
}
