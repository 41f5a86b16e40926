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

package autoscaler

import (
	"sync"

	"github.com/bjhaid/flink-kubernetes-operator/pkg/telemetry"
)

// Store hands out one Metrics per job. Keys follow the operator's
// "<namespace>/<name>" convention. All methods are safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	items map[string]*Metrics
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*Metrics)}
}

// GetOrCreate returns the job's Metrics, creating it on first use. groupFn
// supplies the telemetry group of a new Metrics and is only invoked when
// the key is not present, so callers can construct job-scoped groups
// without registering duplicate instruments.
func (s *Store) GetOrCreate(key string, groupFn func() telemetry.Group) *Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.items[key]; ok {
		return m
	}
	m := New(groupFn())
	s.items[key] = m
	return m
}

// Get returns the job's Metrics if present.
func (s *Store) Get(key string) (*Metrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.items[key]
	return m, ok
}

// Remove drops the job's entry, typically when the job is deleted. A later
// GetOrCreate starts over with a fresh Metrics.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}
