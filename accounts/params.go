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

package accounts

import (
	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/storage"
)

// ParamsRecord is the current layout of Accounts/Params.
type ParamsRecord struct {
	MinDeposit uint64
	Frozen     bool
}

// paramsV0 is the layout before Frozen was added and MinDeposit widened.
type paramsV0 struct {
	MinDeposit uint32
}

type paramsCodec struct{}

var ParamsCodec codec.Codec[ParamsRecord] = paramsCodec{}

func (paramsCodec) EncodeTo(dst []byte, p ParamsRecord) []byte {
	dst = codec.U64.EncodeTo(dst, p.MinDeposit)
	return codec.Bool.EncodeTo(dst, p.Frozen)
}

func (paramsCodec) DecodeFrom(src []byte) (p ParamsRecord, rest []byte, err error) {
	if p.MinDeposit, rest, err = codec.U64.DecodeFrom(src); err != nil {
		return p, nil, err
	}
	if p.Frozen, rest, err = codec.Bool.DecodeFrom(rest); err != nil {
		return p, nil, err
	}
	return p, rest, nil
}

type paramsV0Codec struct{}

func (paramsV0Codec) EncodeTo(dst []byte, p paramsV0) []byte {
	return codec.U32.EncodeTo(dst, p.MinDeposit)
}

func (paramsV0Codec) DecodeFrom(src []byte) (p paramsV0, rest []byte, err error) {
	p.MinDeposit, rest, err = codec.U32.DecodeFrom(src)
	return p, rest, err
}

// MigrateParams rewrites a v0 Params payload in the current layout. Migrated
// params are not frozen. Without a payload nothing is written.
func MigrateParams(tx kv.RwStore) (*ParamsRecord, error) {
	p, ok, err := storage.Translate(tx, Params, codec.Codec[paramsV0](paramsV0Codec{}), func(old paramsV0, ok bool) (ParamsRecord, bool) {
		if !ok {
			return ParamsRecord{}, false
		}
		return ParamsRecord{MinDeposit: uint64(old.MinDeposit)}, true
	})
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}
