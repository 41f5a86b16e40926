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

// Counter is a monotonically increasing count of events.
type Counter interface {
	// Inc increments the counter by one.
	Inc()

	// Add increments the counter by n. Negative values are ignored.
	Add(n int64)
}

// Group is a named scope for instruments. Instruments created on a group
// inherit the scope of that group and of all its ancestors.
//
// Creating an instrument never fails and never panics; a name collision
// reuses or drops the new instrument depending on the implementation. This
// keeps instrument registration safe to run inside a control loop.
type Group interface {
	// Counter creates (or retrieves) a counter with the given name.
	Counter(name string) Counter

	// Gauge registers a dynamic gauge whose value is produced by the
	// callback at read time. The callback must be safe for concurrent use
	// and must not block.
	Gauge(name string, value func() float64)

	// AddGroup returns a sub-group scoped under this group.
	AddGroup(name string) Group
}
