package autoscaler

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bjhaid/flink-kubernetes-operator/pkg/jobgraph"
	"github.com/bjhaid/flink-kubernetes-operator/pkg/telemetry"
)

func gaugePath(id jobgraph.VertexID, metric ScalingMetric, suffix string) string {
	return jobVertexIDScope + "/" + id.String() + "/" + string(metric) + "/" + suffix
}

var _ = Describe("Metrics", func() {
	var (
		group  *telemetry.InMemoryGroup
		m      *Metrics
		holder *SnapshotHolder
	)

	BeforeEach(func() {
		group = telemetry.NewInMemoryGroup()
		m = New(group)
		holder = &SnapshotHolder{}
	})

	currentOf := func(id jobgraph.VertexID, metric ScalingMetric) float64 {
		GinkgoHelper()
		v, ok := group.GaugeValue(gaugePath(id, metric, currentSuffix))
		Expect(ok).To(BeTrue(), "expected a Current gauge for %s/%s", id, metric)
		return v
	}

	averageOf := func(id jobgraph.VertexID, metric ScalingMetric) float64 {
		GinkgoHelper()
		v, ok := group.GaugeValue(gaugePath(id, metric, averageSuffix))
		Expect(ok).To(BeTrue(), "expected an Average gauge for %s/%s", id, metric)
		return v
	}

	Describe("New", func() {
		It("creates the scalings, errors and balanced counters", func() {
			Expect(group.Instruments()).To(ConsistOf("scalings", "errors", "balanced"))
		})

		It("returns incrementable counter handles", func() {
			m.NumScalings.Inc()
			m.NumErrors.Add(2)
			m.NumBalanced.Inc()
			m.NumBalanced.Inc()

			v, _ := group.CounterValue("scalings")
			Expect(v).To(Equal(int64(1)))
			v, _ = group.CounterValue("errors")
			Expect(v).To(Equal(int64(2)))
			v, _ = group.CounterValue("balanced")
			Expect(v).To(Equal(int64(2)))
		})
	})

	Describe("RegisterScalingMetrics", func() {
		Context("before any snapshot is published", func() {
			It("registers no vertex instruments", func() {
				m.RegisterScalingMetrics(holder.Accessor())
				Expect(group.Instruments()).To(ConsistOf("scalings", "errors", "balanced"))
			})

			It("tolerates a nil accessor", func() {
				m.RegisterScalingMetrics(nil)
				Expect(group.Instruments()).To(ConsistOf("scalings", "errors", "balanced"))
			})
		})

		Context("with a published snapshot", func() {
			var v1 jobgraph.VertexID

			BeforeEach(func() {
				v1 = jobgraph.NewVertexID()
				holder.Publish(EvaluatedMetrics{
					v1: VertexMetrics{
						MetricParallelism:    EvaluatedWithAverage(4, 4),
						MetricThroughput:     EvaluatedWithAverage(100, 90),
						MetricMaxParallelism: Evaluated(16),
					},
				})
				m.RegisterScalingMetrics(holder.Accessor())
			})

			It("creates a Current gauge per metric in the snapshot", func() {
				Expect(currentOf(v1, MetricParallelism)).To(Equal(4.0))
				Expect(currentOf(v1, MetricThroughput)).To(Equal(100.0))
				Expect(currentOf(v1, MetricMaxParallelism)).To(Equal(16.0))
			})

			It("creates an Average gauge only for averaged metrics", func() {
				Expect(averageOf(v1, MetricParallelism)).To(Equal(4.0))
				Expect(averageOf(v1, MetricThroughput)).To(Equal(90.0))

				_, ok := group.GaugeValue(gaugePath(v1, MetricMaxParallelism, averageSuffix))
				Expect(ok).To(BeFalse(), "MAX_PARALLELISM must not get an Average gauge")
			})

			It("reads the latest published snapshot on every gauge read", func() {
				holder.Publish(EvaluatedMetrics{
					v1: VertexMetrics{
						MetricParallelism: EvaluatedWithAverage(6, 5),
						MetricThroughput:  EvaluatedWithAverage(400, 350),
					},
				})

				Expect(currentOf(v1, MetricParallelism)).To(Equal(6.0))
				Expect(averageOf(v1, MetricParallelism)).To(Equal(5.0))
				Expect(currentOf(v1, MetricThroughput)).To(Equal(400.0))
				Expect(averageOf(v1, MetricThroughput)).To(Equal(350.0))
			})

			It("is idempotent across calls", func() {
				before := group.Instruments()
				m.RegisterScalingMetrics(holder.Accessor())
				m.RegisterScalingMetrics(holder.Accessor())
				Expect(group.Instruments()).To(Equal(before))
			})

			It("does not instrument metrics appearing later for a known vertex", func() {
				holder.Publish(EvaluatedMetrics{
					v1: VertexMetrics{
						MetricParallelism: EvaluatedWithAverage(4, 4),
						MetricLag:         Evaluated(1000),
					},
				})
				m.RegisterScalingMetrics(holder.Accessor())

				_, ok := group.GaugeValue(gaugePath(v1, MetricLag, currentSuffix))
				Expect(ok).To(BeFalse(), "vertices are instrumented exactly once")
			})

			It("instruments vertices appearing in later snapshots", func() {
				v2 := jobgraph.NewVertexID()
				holder.Publish(EvaluatedMetrics{
					v1: VertexMetrics{MetricParallelism: EvaluatedWithAverage(4, 4)},
					v2: VertexMetrics{MetricParallelism: EvaluatedWithAverage(3, 3)},
				})
				m.RegisterScalingMetrics(holder.Accessor())

				Expect(currentOf(v2, MetricParallelism)).To(Equal(3.0))
			})

			It("reads NaN while the vertex is missing from the snapshot", func() {
				holder.Publish(EvaluatedMetrics{})

				Expect(math.IsNaN(currentOf(v1, MetricParallelism))).To(BeTrue())
				Expect(math.IsNaN(currentOf(v1, MetricThroughput))).To(BeTrue())
				Expect(math.IsNaN(averageOf(v1, MetricThroughput))).To(BeTrue())
			})

			It("reads NaN for a metric missing from the vertex", func() {
				holder.Publish(EvaluatedMetrics{
					v1: VertexMetrics{MetricParallelism: EvaluatedWithAverage(2, 2)},
				})

				Expect(math.IsNaN(currentOf(v1, MetricThroughput))).To(BeTrue())
				Expect(currentOf(v1, MetricParallelism)).To(Equal(2.0))
			})

			It("recovers real values when the vertex returns", func() {
				holder.Publish(EvaluatedMetrics{})
				Expect(math.IsNaN(currentOf(v1, MetricParallelism))).To(BeTrue())

				holder.Publish(EvaluatedMetrics{
					v1: VertexMetrics{
						MetricParallelism: EvaluatedWithAverage(6, 5),
						MetricThroughput:  EvaluatedWithAverage(300, 250),
					},
				})
				Expect(currentOf(v1, MetricParallelism)).To(Equal(6.0))
				Expect(averageOf(v1, MetricThroughput)).To(Equal(250.0))
			})
		})
	})

	Describe("staging helpers", func() {
		var v1 jobgraph.VertexID

		BeforeEach(func() {
			v1 = jobgraph.NewVertexID()
		})

		It("InitRecommendedParallelism copies the current parallelism", func() {
			evaluated := EvaluatedMetrics{
				v1: VertexMetrics{MetricParallelism: EvaluatedWithAverage(2, 2)},
			}
			InitRecommendedParallelism(evaluated)

			Expect(evaluated[v1]).To(HaveKeyWithValue(MetricRecommendedParallelism, EvaluatedWithAverage(2, 2)))
		})

		It("InitRecommendedParallelism drops the recommendation when parallelism is absent", func() {
			evaluated := EvaluatedMetrics{
				v1: VertexMetrics{
					MetricLag:                    Evaluated(1000),
					MetricRecommendedParallelism: Evaluated(5),
				},
			}
			InitRecommendedParallelism(evaluated)

			Expect(evaluated[v1]).NotTo(HaveKey(MetricRecommendedParallelism))
		})

		It("ResetRecommendedParallelism removes the recommendation", func() {
			evaluated := EvaluatedMetrics{
				v1: VertexMetrics{
					MetricParallelism:            EvaluatedWithAverage(2, 2),
					MetricRecommendedParallelism: Evaluated(4),
				},
			}
			ResetRecommendedParallelism(evaluated)

			Expect(evaluated[v1]).NotTo(HaveKey(MetricRecommendedParallelism))
			Expect(evaluated[v1]).To(HaveKey(MetricParallelism))
		})

		It("drives the recommendation gauges through a scaling lifecycle", func() {
			evaluated := EvaluatedMetrics{
				v1: VertexMetrics{
					MetricParallelism: EvaluatedWithAverage(2, 2),
					MetricThroughput:  EvaluatedWithAverage(100, 90),
				},
			}
			InitRecommendedParallelism(evaluated)
			holder.Publish(evaluated)
			m.RegisterScalingMetrics(holder.Accessor())

			Expect(currentOf(v1, MetricRecommendedParallelism)).To(Equal(2.0))

			// Scaling done, next evaluation carries no recommendation.
			next := EvaluatedMetrics{
				v1: VertexMetrics{
					MetricParallelism: EvaluatedWithAverage(4, 3),
					MetricThroughput:  EvaluatedWithAverage(200, 180),
				},
			}
			ResetRecommendedParallelism(next)
			holder.Publish(next)
			m.RegisterScalingMetrics(holder.Accessor())

			Expect(currentOf(v1, MetricParallelism)).To(Equal(4.0))
			Expect(averageOf(v1, MetricParallelism)).To(Equal(3.0))
			Expect(math.IsNaN(currentOf(v1, MetricRecommendedParallelism))).To(BeTrue())
		})
	})
})
