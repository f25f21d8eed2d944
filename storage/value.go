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

package storage

import (
	"fmt"

	"github.com/ledgerwatch/log/v3"

	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/kv"
)

// Value is one declared value of stored type T, seen by callers as Q.
type Value[T, Q any] struct {
	ownerScope string
	valueID    string
	codec      codec.Codec[T]
	query      QueryAdapter[T, Q]
}

func NewValue[T, Q any](ownerScope, valueID string, c codec.Codec[T], q QueryAdapter[T, Q]) *Value[T, Q] {
	return &Value[T, Q]{ownerScope: ownerScope, valueID: valueID, codec: c, query: q}
}

func (v *Value[T, Q]) OwnerScope() []byte { return []byte(v.ownerScope) }
func (v *Value[T, Q]) ValueID() []byte    { return []byte(v.valueID) }
func (v *Value[T, Q]) String() string     { return v.ownerScope + "/" + v.valueID }

// Key derives the final key. It is recomputed on every call.
func (v *Value[T, Q]) Key() Key {
	return FinalKey([]byte(v.ownerScope), []byte(v.valueID))
}

func (v *Value[T, Q]) Codec() codec.Codec[T]          { return v.codec }
func (v *Value[T, Q]) Query() QueryAdapter[T, Q]      { return v.query }
func (v *Value[T, Q]) Raw(tx kv.Getter) ([]byte, bool) { return tx.Get(v.Key().Bytes()) }

func (v *Value[T, Q]) Exists(tx kv.Getter) bool {
	return tx.Has(v.Key().Bytes())
}

// TryGet returns the stored value, ErrNotFound when there is none, or a
// codec.ErrDecode error when the payload doesn't decode.
func (v *Value[T, Q]) TryGet(tx kv.Getter) (T, error) {
	var zero T
	raw, ok := tx.Get(v.Key().Bytes())
	if !ok {
		return zero, fmt.Errorf("%s: %w", v, ErrNotFound)
	}
	val, err := codec.Decode(v.codec, raw)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", v, err)
	}
	return val, nil
}

// Get never fails. A payload that doesn't decode reads as absent.
func (v *Value[T, Q]) Get(tx kv.Getter) Q {
	return v.query.FromOptional(v.get(tx, v.Key()))
}

func (v *Value[T, Q]) get(tx kv.Getter, key Key) (T, bool) {
	var zero T
	raw, ok := tx.Get(key.Bytes())
	if !ok {
		return zero, false
	}
	val, err := codec.Decode(v.codec, raw)
	if err != nil {
		log.Warn("[storage] corrupted value, reading as absent", "value", v.String(), "key", key, "err", err)
		return zero, false
	}
	return val, true
}

func (v *Value[T, Q]) Put(tx kv.Putter, val T) {
	tx.Put(v.Key().Bytes(), codec.Encode(v.codec, val))
}

// Set writes q, or deletes the payload if the adapter maps q to absent.
func (v *Value[T, Q]) Set(tx kv.Putter, q Q) {
	if val, ok := v.query.ToOptional(q); ok {
		v.Put(tx, val)
		return
	}
	v.Kill(tx)
}

func (v *Value[T, Q]) Kill(tx kv.Putter) {
	tx.Delete(v.Key().Bytes())
}

// Take reads the value and deletes it. A payload that doesn't decode reads
// as absent and is left in place.
func (v *Value[T, Q]) Take(tx kv.RwStore) Q {
	key := v.Key()
	val, ok := v.get(tx, key)
	if ok {
		tx.Delete(key.Bytes())
	}
	return v.query.FromOptional(val, ok)
}

// TryMutate passes the current query value to f and stores the result if f
// succeeds. If f fails nothing is written and its error is returned.
func (v *Value[T, Q]) TryMutate(tx kv.RwStore, f func(q *Q) error) error {
	_, err := TryMutateResult(tx, v, func(q *Q) (struct{}, error) {
		return struct{}{}, f(q)
	})
	return err
}

// Mutate is TryMutate with a function that can't fail.
func (v *Value[T, Q]) Mutate(tx kv.RwStore, f func(q *Q)) {
	MutateResult(tx, v, func(q *Q) struct{} {
		f(q)
		return struct{}{}
	})
}

// TryMutateResult is TryMutate for functions that also return a result.
func TryMutateResult[T, Q, R any](tx kv.RwStore, v *Value[T, Q], f func(q *Q) (R, error)) (R, error) {
	q := v.Get(tx)
	r, err := f(&q)
	if err != nil {
		return r, err
	}
	v.Set(tx, q)
	return r, nil
}

// MutateResult always commits the modified value and returns f's result.
func MutateResult[T, Q, R any](tx kv.RwStore, v *Value[T, Q], f func(q *Q) R) R {
	q := v.Get(tx)
	r := f(&q)
	v.Set(tx, q)
	return r
}

// Translate rewrites the payload from an older encoding. If a payload exists
// it must decode with old, otherwise the error is returned and nothing is
// written. An old payload with trailing bytes is rejected the same way.
// f gets the old value (ok is false if there was none); its result is
// stored, or the payload deleted if f reports absent.
func Translate[O, T, Q any](tx kv.RwStore, v *Value[T, Q], old codec.Codec[O], f func(o O, ok bool) (T, bool)) (T, bool, error) {
	key := v.Key()
	var (
		o       O
		present bool
	)
	if raw, ok := tx.Get(key.Bytes()); ok {
		var err error
		if o, err = codec.Decode(old, raw); err != nil {
			var zero T
			return zero, false, fmt.Errorf("translate %s: %w", v, err)
		}
		present = true
	}
	val, ok := f(o, present)
	if !ok {
		tx.Delete(key.Bytes())
		var zero T
		return zero, false, nil
	}
	tx.Put(key.Bytes(), codec.Encode(v.codec, val))
	return val, true, nil
}

// Format decodes a payload of this value for display.
func (v *Value[T, Q]) Format(payload []byte) (string, error) {
	val, err := codec.Decode(v.codec, payload)
	if err != nil {
		return "", err
	}
	if s, ok := any(&val).(fmt.Stringer); ok {
		return s.String(), nil
	}
	return fmt.Sprintf("%v", val), nil
}
