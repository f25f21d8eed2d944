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

// Package codec is a SCALE-style binary encoding for stored values.
//
// General design:
//   - integers are fixed-width little-endian, lengths use the compact form
//   - sequences are compact(len) followed by the item encodings, so the item
//     count can be read without touching the items and a new item can be
//     added by rewriting the prefix and appending bytes
//   - codecs append to a caller-owned buffer (EncodeTo) and decode from the
//     front of a buffer returning the rest (DecodeFrom), so they compose
package codec

import (
	"errors"
	"fmt"
)

var (
	ErrDecode        = errors.New("codec: decode failed")
	ErrLength        = errors.New("codec: malformed length prefix")
	ErrTrailingBytes = errors.New("trailing bytes")
	ErrShortInput    = errors.New("unexpected end of input")
)

// Codec encodes and decodes values of type T.
type Codec[T any] interface {
	// EncodeTo appends the encoding of v to dst and returns the extended slice.
	EncodeTo(dst []byte, v T) []byte
	// DecodeFrom decodes one value from the front of src and returns the
	// unread remainder. Errors wrap ErrDecode.
	DecodeFrom(src []byte) (T, []byte, error)
}

// Encode returns the encoding of v in a fresh buffer.
func Encode[T any](c Codec[T], v T) []byte {
	return c.EncodeTo(nil, v)
}

// Decode decodes v from b. The whole input must be consumed.
func Decode[T any](c Codec[T], b []byte) (T, error) {
	v, rest, err := c.DecodeFrom(b)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(rest) != 0 {
		var zero T
		return zero, fmt.Errorf("%w: %w: %d byte(s) left", ErrDecode, ErrTrailingBytes, len(rest))
	}
	return v, nil
}

func decodeErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrDecode}, args...)...)
}

func shortInput(what string, need, have int) error {
	return fmt.Errorf("%w: %s: %w: need %d, have %d", ErrDecode, what, ErrShortInput, need, have)
}
