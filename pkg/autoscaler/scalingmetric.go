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

// ScalingMetric identifies one quantity evaluated per vertex by the
// autoscaler. The string value names the metric sub-group of the vertex's
// instruments.
type ScalingMetric string

const (
	// MetricLoad is the processing resource usage of the vertex, the ratio
	// of time spent doing useful work to total time.
	MetricLoad ScalingMetric = "LOAD"

	// MetricThroughput is the rate of records processed by the vertex per
	// second.
	MetricThroughput ScalingMetric = "THROUGHPUT"

	// MetricTrueProcessingRate is the rate the vertex could sustain at full
	// utilization, records per second.
	MetricTrueProcessingRate ScalingMetric = "TRUE_PROCESSING_RATE"

	// MetricTargetDataRate is the incoming data rate the vertex is expected
	// to keep up with, records per second.
	MetricTargetDataRate ScalingMetric = "TARGET_DATA_RATE"

	// MetricCatchUpDataRate is the extra rate required to work off the
	// accumulated backlog within the configured catch-up duration.
	MetricCatchUpDataRate ScalingMetric = "CATCH_UP_DATA_RATE"

	// MetricLag is the backlog upstream of the vertex, in records.
	MetricLag ScalingMetric = "LAG"

	// MetricParallelism is the parallelism the vertex currently runs with.
	MetricParallelism ScalingMetric = "PARALLELISM"

	// MetricRecommendedParallelism is the parallelism recommended by the
	// latest evaluation. Absent outside scaling windows; see
	// InitRecommendedParallelism and ResetRecommendedParallelism.
	MetricRecommendedParallelism ScalingMetric = "RECOMMENDED_PARALLELISM"

	// MetricMaxParallelism is the upper parallelism bound of the vertex.
	MetricMaxParallelism ScalingMetric = "MAX_PARALLELISM"

	// MetricScaleUpRateThreshold is the processing rate below which the
	// vertex is scaled up.
	MetricScaleUpRateThreshold ScalingMetric = "SCALE_UP_RATE_THRESHOLD"

	// MetricScaleDownRateThreshold is the processing rate above which the
	// vertex is scaled down.
	MetricScaleDownRateThreshold ScalingMetric = "SCALE_DOWN_RATE_THRESHOLD"

	// MetricExpectedProcessingRate is the processing rate expected after
	// rescaling to the recommended parallelism.
	MetricExpectedProcessingRate ScalingMetric = "EXPECTED_PROCESSING_RATE"
)

// averaged lists the metrics tracked with a windowed average next to the
// instantaneous value.
var averaged = map[ScalingMetric]bool{
	MetricLoad:               true,
	MetricThroughput:         true,
	MetricTrueProcessingRate: true,
	MetricTargetDataRate:     true,
	MetricParallelism:        true,
}

// CalculatesAverage reports whether the metric carries a windowed average
// in addition to its current value.
func (m ScalingMetric) CalculatesAverage() bool {
	return averaged[m]
}

// ScalingMetrics returns all metrics in declaration order.
func ScalingMetrics() []ScalingMetric {
	return []ScalingMetric{
		MetricLoad,
		MetricThroughput,
		MetricTrueProcessingRate,
		MetricTargetDataRate,
		MetricCatchUpDataRate,
		MetricLag,
		MetricParallelism,
		MetricRecommendedParallelism,
		MetricMaxParallelism,
		MetricScaleUpRateThreshold,
		MetricScaleDownRateThreshold,
		MetricExpectedProcessingRate,
	}
}
