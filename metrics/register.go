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

package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Set is a group of counters registered with one prometheus.Registerer.
type Set struct {
	mu       sync.Mutex
	reg      prometheus.Registerer
	counters map[string]*counter
}

var defaultSet = NewSet(prometheus.DefaultRegisterer)

func NewSet(reg prometheus.Registerer) *Set {
	return &Set{reg: reg, counters: map[string]*counter{}}
}

// GetOrCreateCounter returns the counter registered under name and labels,
// creating and registering it on first use.
func (s *Set) GetOrCreateCounter(name string, labels prometheus.Labels) (Counter, error) {
	id := counterID(name, labels)

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.counters[id]; ok {
		return c, nil
	}
	c := &counter{prometheus.NewCounter(prometheus.CounterOpts{
		Name:        name,
		Help:        name,
		ConstLabels: labels,
	})}
	if err := s.reg.Register(c.Counter); err != nil {
		return nil, err
	}
	s.counters[id] = c
	return c, nil
}

func counterID(name string, labels prometheus.Labels) string {
	if len(labels) == 0 {
		return name
	}
	pairs := make([]string, 0, len(labels))
	for k, v := range labels {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, v))
	}
	sort.Strings(pairs)
	return name + "{" + strings.Join(pairs, ",") + "}"
}

// GetOrCreateCounter returns registered counter with the given name and
// labels from the default set, or creates it.
//
// The returned counter is safe to use from concurrent goroutines.
func GetOrCreateCounter(name string, labels prometheus.Labels) Counter {
	c, err := defaultSet.GetOrCreateCounter(name, labels)
	if err != nil {
		panic(fmt.Errorf("could not get or create new counter: %w", err))
	}

	return c
}

// DefaultSet is the set backing the package-level GetOrCreateCounter. It
// registers with prometheus.DefaultRegisterer.
func DefaultSet() *Set { return defaultSet }
