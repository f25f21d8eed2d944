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

package codec

// OptionCodec encodes *E as 0x00 for nil or 0x01 followed by the item.
type OptionCodec[E any] struct {
	item Codec[E]
}

func Option[E any](item Codec[E]) OptionCodec[E] { return OptionCodec[E]{item: item} }

func (c OptionCodec[E]) EncodeTo(dst []byte, v *E) []byte {
	if v == nil {
		return append(dst, 0)
	}
	return c.item.EncodeTo(append(dst, 1), *v)
}

func (c OptionCodec[E]) DecodeFrom(src []byte) (*E, []byte, error) {
	if len(src) < 1 {
		return nil, src, shortInput("option", 1, 0)
	}
	switch src[0] {
	case 0:
		return nil, src[1:], nil
	case 1:
		e, rest, err := c.item.DecodeFrom(src[1:])
		if err != nil {
			return nil, src, err
		}
		return &e, rest, nil
	}
	return nil, src, decodeErr("option: invalid tag 0x%02x", src[0])
}
