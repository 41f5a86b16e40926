// Package autoscaler holds the live metrics surface of the job autoscaler.
//
// The control loop periodically evaluates every vertex of a running job and
// publishes the result as an immutable snapshot (EvaluatedMetrics). This
// package turns those snapshots into long-lived instruments on a
// telemetry.Group without coupling instrument lifetime to snapshot
// lifetime:
//
//   - Metrics owns the per-job instruments: the scalings/errors/balanced
//     counters created up front, and per-vertex gauges registered lazily as
//     vertices first appear in a snapshot.
//   - SnapshotHolder republishes each evaluation by swapping a reference,
//     so gauge reads racing with the control loop always see a complete
//     snapshot, either the previous one or the new one.
//   - Store hands out one Metrics per job key, letting a single operator
//     process host instruments for many jobs.
//
// # Usage
//
//	store := autoscaler.NewStore()
//	holder := &autoscaler.SnapshotHolder{}
//
//	// Each reconciliation of job "default/orders":
//	m := store.GetOrCreate("default/orders", func() telemetry.Group {
//		return telemetry.DefaultPrometheusGroup("autoscaler", prometheus.Labels{
//			"job_name":      "orders",
//			"job_namespace": "default",
//		})
//	})
//	holder.Publish(evaluated)
//	m.RegisterScalingMetrics(holder.Accessor())
//
// Gauges resolve their value at read time by following
// accessor -> vertex -> metric and report NaN as soon as any step is
// missing. A vertex that disappears from later snapshots therefore keeps
// its instruments, which simply read NaN until the vertex returns.
package autoscaler
