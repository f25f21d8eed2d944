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

// QueryAdapter converts between what is stored (an optional T) and what
// callers see (Q). ToOptional(FromOptional(v, ok)) must give back (v, ok)
// for every v that decodes from a real payload.
type QueryAdapter[T, Q any] interface {
	FromOptional(v T, ok bool) Q
	ToOptional(q Q) (T, bool)
}

// OptionQuery exposes the value as a pointer; nil means absent.
type OptionQuery[T any] struct{}

func (OptionQuery[T]) FromOptional(v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

func (OptionQuery[T]) ToOptional(q *T) (T, bool) {
	if q == nil {
		var zero T
		return zero, false
	}
	return *q, true
}

// ValueQuery reads an absent value as Default. Every query value is written
// back, Default included.
type ValueQuery[T any] struct {
	Default T
}

func (q ValueQuery[T]) FromOptional(v T, ok bool) T {
	if !ok {
		return q.Default
	}
	return v
}

func (ValueQuery[T]) ToOptional(v T) (T, bool) { return v, true }

// ElideDefault reads an absent value as Default and deletes the payload when
// the query value equals Default.
type ElideDefault[T comparable] struct {
	Default T
}

func (q ElideDefault[T]) FromOptional(v T, ok bool) T {
	if !ok {
		return q.Default
	}
	return v
}

func (q ElideDefault[T]) ToOptional(v T) (T, bool) {
	if v == q.Default {
		var zero T
		return zero, false
	}
	return v, true
}

// ElideEmpty reads an absent sequence as nil and deletes the payload when the
// sequence is empty.
type ElideEmpty[E any] struct{}

func (ElideEmpty[E]) FromOptional(v []E, ok bool) []E {
	if !ok {
		return nil
	}
	return v
}

func (ElideEmpty[E]) ToOptional(v []E) ([]E, bool) {
	if len(v) == 0 {
		return nil, false
	}
	return v, true
}

// QueryFuncs builds an adapter from two functions.
type QueryFuncs[T, Q any] struct {
	From func(v T, ok bool) Q
	To   func(q Q) (T, bool)
}

func (q QueryFuncs[T, Q]) FromOptional(v T, ok bool) Q { return q.From(v, ok) }
func (q QueryFuncs[T, Q]) ToOptional(v Q) (T, bool)    { return q.To(v) }
