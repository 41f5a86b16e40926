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

import "sync/atomic"

// SnapshotHolder publishes evaluation snapshots to gauge readers. Publish
// swaps a reference, so a read racing with a publish sees either the
// previous or the new snapshot, never a partial one. The zero value is
// ready to use and holds no snapshot.
//
// Snapshots must be treated as immutable once published; staging helpers
// like InitRecommendedParallelism run before Publish.
type SnapshotHolder struct {
	snapshot atomic.Pointer[EvaluatedMetrics]
}

// Publish makes m the snapshot returned by subsequent Latest calls.
func (h *SnapshotHolder) Publish(m EvaluatedMetrics) {
	h.snapshot.Store(&m)
}

// Latest returns the most recently published snapshot, or nil if nothing
// has been published.
func (h *SnapshotHolder) Latest() EvaluatedMetrics {
	p := h.snapshot.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Accessor adapts the holder to the SnapshotAccessor consumed by
// Metrics.RegisterScalingMetrics.
func (h *SnapshotHolder) Accessor() SnapshotAccessor {
	return h.Latest
}
