/*
Copyright 2026 The Flink Kubernetes Operator Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package telemetry

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// InMemoryGroup is a Group recording instruments in process memory.
// Instruments are addressed by their scope path joined with "/", e.g.
// "jobVertexID/bc76.../Load/Current". Sub-groups share the root's store, so
// lookups work on any group in the hierarchy.
//
// All methods are safe for concurrent use. Gauge callbacks run on the
// caller of GaugeValue.
type InMemoryGroup struct {
	store *memStore
	scope []string
}

type memStore struct {
	mu       sync.RWMutex
	counters map[string]*InMemoryCounter
	gauges   map[string]func() float64
}

// NewInMemoryGroup returns an empty root group.
func NewInMemoryGroup() *InMemoryGroup {
	return &InMemoryGroup{
		store: &memStore{
			counters: make(map[string]*InMemoryCounter),
			gauges:   make(map[string]func() float64),
		},
	}
}

// Counter implements Group. Repeated calls with the same name return the
// same counter.
func (g *InMemoryGroup) Counter(name string) Counter {
	path := g.path(name)
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if c, ok := g.store.counters[path]; ok {
		return c
	}
	c := &InMemoryCounter{}
	g.store.counters[path] = c
	return c
}

// Gauge implements Group. The first callback registered under a path wins;
// later ones are dropped, matching the registry behavior of the Prometheus
// implementation.
func (g *InMemoryGroup) Gauge(name string, value func() float64) {
	path := g.path(name)
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, ok := g.store.gauges[path]; ok {
		return
	}
	g.store.gauges[path] = value
}

// AddGroup implements Group.
func (g *InMemoryGroup) AddGroup(name string) Group {
	scope := make([]string, 0, len(g.scope)+1)
	scope = append(scope, g.scope...)
	scope = append(scope, name)
	return &InMemoryGroup{store: g.store, scope: scope}
}

// CounterValue returns the current value of the counter at path, relative
// to this group's scope. The second return reports whether the counter
// exists.
func (g *InMemoryGroup) CounterValue(path string) (int64, bool) {
	g.store.mu.RLock()
	c, ok := g.store.counters[g.path(path)]
	g.store.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return c.Value(), true
}

// GaugeValue invokes the gauge callback at path, relative to this group's
// scope. The second return reports whether the gauge exists; a gauge may
// legitimately produce NaN.
func (g *InMemoryGroup) GaugeValue(path string) (float64, bool) {
	g.store.mu.RLock()
	fn, ok := g.store.gauges[g.path(path)]
	g.store.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return fn(), true
}

// Instruments returns the sorted paths of all registered instruments.
func (g *InMemoryGroup) Instruments() []string {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	paths := make([]string, 0, len(g.store.counters)+len(g.store.gauges))
	for p := range g.store.counters {
		paths = append(paths, p)
	}
	for p := range g.store.gauges {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (g *InMemoryGroup) path(name string) string {
	if len(g.scope) == 0 {
		return name
	}
	return strings.Join(g.scope, "/") + "/" + name
}

// InMemoryCounter is the Counter implementation of InMemoryGroup.
type InMemoryCounter struct {
	v atomic.Int64
}

// Inc implements Counter.
func (c *InMemoryCounter) Inc() { c.v.Add(1) }

// Add implements Counter. Negative values are ignored.
func (c *InMemoryCounter) Add(n int64) {
	if n < 0 {
		return
	}
	c.v.Add(n)
}

// Value returns the current count.
func (c *InMemoryCounter) Value() int64 { return c.v.Load() }
