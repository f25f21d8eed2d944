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

package kv

import (
	"context"

	"github.com/ledgerwatch/log/v3"

	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/common"
	"github.com/erigontech/statevalue/common/hex"
)

// Update runs f inside a write transaction and commits if f succeeds.
func Update(ctx context.Context, db RwDB, f func(tx RwTx) error) error {
	tx, err := db.BeginRw(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := f(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type getPutter interface {
	Getter
	Put(key, payload []byte)
}

// AppendItem implements Putter.Append for backends that only have Get and
// Put. A payload whose length prefix can't be read is replaced by a fresh
// one-element sequence, and the loss is logged.
func AppendItem(s getPutter, logger log.Logger, key, item []byte) {
	old, ok := s.Get(key)
	payload, reset := codec.AppendOrNew(old, ok, item)
	if reset {
		logger.Warn("[kv] append: stored payload is not a sequence, replaced", "key", hex.Encode(key), "dropped", common.StorageSize(len(old)))
	}
	s.Put(key, payload)
}

func Copy(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
