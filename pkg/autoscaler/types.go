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
	"github.com/bjhaid/flink-kubernetes-operator/pkg/jobgraph"
)

// EvaluatedScalingMetric is the evaluated value of one metric for one
// vertex. Average is meaningful only for metrics whose CalculatesAverage
// reports true.
type EvaluatedScalingMetric struct {
	Current float64
	Average float64
}

// Evaluated returns a metric value without an average.
func Evaluated(current float64) EvaluatedScalingMetric {
	return EvaluatedScalingMetric{Current: current}
}

// EvaluatedWithAverage returns a metric value with a windowed average.
func EvaluatedWithAverage(current, average float64) EvaluatedScalingMetric {
	return EvaluatedScalingMetric{Current: current, Average: average}
}

// VertexMetrics holds the evaluated metrics of a single vertex. A metric
// absent from the map is undefined and reads as NaN through the gauges.
type VertexMetrics map[ScalingMetric]EvaluatedScalingMetric

// EvaluatedMetrics is one evaluation snapshot of a whole job. Snapshots are
// built by the evaluator, optionally staged with
// InitRecommendedParallelism or ResetRecommendedParallelism, and then
// published. A published snapshot must no longer be mutated.
type EvaluatedMetrics map[jobgraph.VertexID]VertexMetrics

// SnapshotAccessor returns the snapshot gauge reads resolve against. A nil
// return means no snapshot has been published yet; every gauge then reads
// NaN. Implementations are called concurrently from metric scrapes and must
// not block.
type SnapshotAccessor func() EvaluatedMetrics
