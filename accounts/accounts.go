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

// Package accounts declares the values an accounts module keeps in state and
// the operations it performs on them.
package accounts

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/kv"
	"github.com/erigontech/statevalue/storage"
)

const OwnerScope = "Accounts"

var (
	ErrOverflow     = errors.New("accounts: total overflows")
	ErrInsufficient = errors.New("accounts: insufficient total")
	ErrFrozen       = errors.New("accounts: deposits are frozen")
	ErrBelowMinimum = errors.New("accounts: deposit below minimum")
)

// Declarations holds every accounts value, keyed by final key.
var Declarations = storage.NewRegistry()

var (
	// Total is the sum of all deposits. A zero total frees the slot.
	Total = mustDeclare(storage.Declare(Declarations, OwnerScope, "Total", codec.Uint256, storage.ElideDefault[uint256.Int]{}))

	// Holders lists holder ids in deposit order.
	Holders = mustDeclare(storage.DeclareSequence(Declarations, OwnerScope, "Holders", codec.Bytes, storage.ElideEmpty[[]byte]{}))

	Params = mustDeclare(storage.Declare(Declarations, OwnerScope, "Params", ParamsCodec, storage.OptionQuery[ParamsRecord]{}))
)

func mustDeclare[D any](d D, err error) D {
	if err != nil {
		panic(err)
	}
	return d
}

// Register adds every accounts value to r.
func Register(r *storage.Registry) error {
	for _, d := range Declarations.All() {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// Deposit adds amount to Total, checking Params if set.
func Deposit(tx kv.RwStore, amount *uint256.Int) error {
	if p := Params.Get(tx); p != nil {
		if p.Frozen {
			return ErrFrozen
		}
		if amount.LtUint64(p.MinDeposit) {
			return fmt.Errorf("%w: %s < %d", ErrBelowMinimum, amount, p.MinDeposit)
		}
	}
	return Total.TryMutate(tx, func(total *uint256.Int) error {
		if _, overflow := total.AddOverflow(total, amount); overflow {
			return fmt.Errorf("%w: adding %s", ErrOverflow, amount)
		}
		return nil
	})
}

func Withdraw(tx kv.RwStore, amount *uint256.Int) error {
	return Total.TryMutate(tx, func(total *uint256.Int) error {
		if total.Lt(amount) {
			return fmt.Errorf("%w: have %s, want %s", ErrInsufficient, total, amount)
		}
		total.Sub(total, amount)
		return nil
	})
}

func AddHolder(tx kv.Putter, id []byte) { Holders.Append(tx, id) }

func HolderCount(tx kv.Getter) (int, error) { return Holders.DecodeLen(tx) }
