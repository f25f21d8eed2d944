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
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/erigontech/statevalue/codec"
	"github.com/erigontech/statevalue/kv"
)

// Declared is the type-erased view of a declared value used by tooling.
type Declared interface {
	fmt.Stringer
	OwnerScope() []byte
	ValueID() []byte
	Key() Key
	Exists(tx kv.Getter) bool
	Raw(tx kv.Getter) ([]byte, bool)
	Kill(tx kv.Putter)
	// Format decodes payload as this value's stored type.
	Format(payload []byte) (string, error)
}

// LengthDecoder is implemented by sequence-shaped declarations.
type LengthDecoder interface {
	DecodeLen(tx kv.Getter) (int, error)
}

var (
	_ Declared      = (*Value[uint64, uint64])(nil)
	_ Declared      = (*Sequence[uint64, []uint64])(nil)
	_ LengthDecoder = (*Sequence[uint64, []uint64])(nil)
)

// Registry tracks declared values by final key so two declarations can't
// silently share a payload.
type Registry struct {
	mu     sync.RWMutex
	byKey  map[Key]Declared
	byName map[string]Declared
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[Key]Declared{}, byName: map[string]Declared{}}
}

func (r *Registry) Register(d Declared) error {
	k := d.Key()
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byKey[k]; ok {
		return fmt.Errorf("%w: %s and %s both map to %s", ErrDuplicateKey, prev, d, k)
	}
	r.byKey[k] = d
	r.byName[d.String()] = d
	return nil
}

func (r *Registry) MustRegister(ds ...Declared) {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Lookup(k Key) (Declared, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byKey[k]
	return d, ok
}

// LookupName finds a declaration by "OwnerScope/ValueID".
func (r *Registry) LookupName(name string) (Declared, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// All returns the declarations ordered by final key.
func (r *Registry) All() []Declared {
	r.mu.RLock()
	out := make([]Declared, 0, len(r.byKey))
	for _, d := range r.byKey {
		out = append(out, d)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		ki, kj := out[i].Key(), out[j].Key()
		return bytes.Compare(ki[:], kj[:]) < 0
	})
	return out
}

// Declare builds a Value and registers it in r.
func Declare[T, Q any](r *Registry, ownerScope, valueID string, c codec.Codec[T], q QueryAdapter[T, Q]) (*Value[T, Q], error) {
	v := NewValue(ownerScope, valueID, c, q)
	if err := r.Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeclareSequence builds a Sequence and registers it in r.
func DeclareSequence[E, Q any](r *Registry, ownerScope, valueID string, item codec.Codec[E], q QueryAdapter[[]E, Q]) (*Sequence[E, Q], error) {
	s := NewSequence(ownerScope, valueID, item, q)
	if err := r.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}
