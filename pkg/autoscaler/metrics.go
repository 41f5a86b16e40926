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
	"math"
	"sync"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/bjhaid/flink-kubernetes-operator/pkg/jobgraph"
	"github.com/bjhaid/flink-kubernetes-operator/pkg/telemetry"
)

const (
	currentSuffix    = "Current"
	averageSuffix    = "Average"
	jobVertexIDScope = "jobVertexID"
)

// Metrics owns the autoscaler instruments of one job.
//
// The three counters exist for the whole lifetime of the Metrics. Vertex
// gauges appear lazily: RegisterScalingMetrics instruments each vertex the
// first time it shows up in a snapshot and never again. Instruments are
// never removed; a vertex that leaves the job keeps its gauges, which read
// NaN from then on.
type Metrics struct {
	// NumScalings counts executed scaling operations.
	NumScalings telemetry.Counter
	// NumErrors counts errors encountered by the autoscaler.
	NumErrors telemetry.Counter
	// NumBalanced counts evaluations that found the job already balanced.
	NumBalanced telemetry.Counter

	group telemetry.Group

	mu         sync.Mutex
	registered map[jobgraph.VertexID]struct{}
}

// New creates the job's counters on group and returns the Metrics managing
// its vertex gauges.
func New(group telemetry.Group) *Metrics {
	return &Metrics{
		NumScalings: group.Counter("scalings"),
		NumErrors:   group.Counter("errors"),
		NumBalanced: group.Counter("balanced"),
		group:       group,
		registered:  make(map[jobgraph.VertexID]struct{}),
	}
}

// RegisterScalingMetrics instruments every vertex present in the accessor's
// snapshot that has not been instrumented before. For each new vertex it
// creates, under the scope jobVertexID/<vertex>, one sub-group per metric
// in the snapshot with a Current gauge, plus an Average gauge for metrics
// that calculate averages.
//
// Gauges hold no values. Every read follows accessor -> vertex -> metric
// and yields NaN when any step is missing, so stale instruments degrade to
// NaN instead of reporting stale data. The method is idempotent and safe
// for concurrent use.
func (m *Metrics) RegisterScalingMetrics(accessor SnapshotAccessor) {
	if accessor == nil {
		return
	}
	for vertexID, evaluated := range accessor() {
		m.registerVertex(vertexID, evaluated, accessor)
	}
}

func (m *Metrics) registerVertex(vertexID jobgraph.VertexID, evaluated VertexMetrics, accessor SnapshotAccessor) {
	m.mu.Lock()
	if _, ok := m.registered[vertexID]; ok {
		m.mu.Unlock()
		return
	}
	m.registered[vertexID] = struct{}{}
	m.mu.Unlock()

	ctrl.Log.Info("Registering scaling metrics for job vertex", "jobVertexID", vertexID.String())
	vertexGroup := m.group.AddGroup(jobVertexIDScope).AddGroup(vertexID.String())
	for metric := range evaluated {
		metricGroup := vertexGroup.AddGroup(string(metric))
		metricGroup.Gauge(currentSuffix, currentValue(accessor, vertexID, metric))
		if metric.CalculatesAverage() {
			metricGroup.Gauge(averageSuffix, averageValue(accessor, vertexID, metric))
		}
	}
}

func currentValue(accessor SnapshotAccessor, vertexID jobgraph.VertexID, metric ScalingMetric) func() float64 {
	return func() float64 {
		if evaluated, ok := lookup(accessor, vertexID, metric); ok {
			return evaluated.Current
		}
		return math.NaN()
	}
}

func averageValue(accessor SnapshotAccessor, vertexID jobgraph.VertexID, metric ScalingMetric) func() float64 {
	return func() float64 {
		if evaluated, ok := lookup(accessor, vertexID, metric); ok {
			return evaluated.Average
		}
		return math.NaN()
	}
}

// lookup resolves one metric of one vertex against the accessor's current
// snapshot. Indexing the possibly nil maps is safe and reports absence.
func lookup(accessor SnapshotAccessor, vertexID jobgraph.VertexID, metric ScalingMetric) (EvaluatedScalingMetric, bool) {
	vertex, ok := accessor()[vertexID]
	if !ok {
		return EvaluatedScalingMetric{}, false
	}
	evaluated, ok := vertex[metric]
	return evaluated, ok
}

// InitRecommendedParallelism stages a snapshot that is published while a
// scaling executes: every vertex's recommended parallelism is seeded from
// its current parallelism, so the recommendation gauges track reality until
// the evaluator produces the next recommendation. A vertex without
// MetricParallelism ends up without a recommendation, which reads as NaN.
func InitRecommendedParallelism(evaluatedMetrics EvaluatedMetrics) {
	for _, vertex := range evaluatedMetrics {
		if parallelism, ok := vertex[MetricParallelism]; ok {
			vertex[MetricRecommendedParallelism] = parallelism
		} else {
			delete(vertex, MetricRecommendedParallelism)
		}
	}
}

// ResetRecommendedParallelism stages a snapshot for the phases where no
// scaling is in flight: every vertex's recommended parallelism is removed
// and its gauges read NaN.
func ResetRecommendedParallelism(evaluatedMetrics EvaluatedMetrics) {
	for _, vertex := range evaluatedMetrics {
		delete(vertex, MetricRecommendedParallelism)
	}
}
