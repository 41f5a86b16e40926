// Package telemetry provides the metric-group capability the autoscaler
// publishes its state through.
//
// A Group is a named scope in a hierarchy of instruments. Groups create
// counters and dynamic gauges and spawn sub-groups, mirroring the scoped
// metric trees exposed by streaming runtimes:
//
//	group := telemetry.DefaultPrometheusGroup("autoscaler", prometheus.Labels{
//		"job_name":      "orders",
//		"job_namespace": "default",
//	})
//	scalings := group.Counter("scalings")
//	vertexGroup := group.AddGroup("jobVertexID").AddGroup(id.String())
//	vertexGroup.Gauge("Current", func() float64 { return read() })
//
// # Implementations
//
//   - PrometheusGroup: flattens the scope chain into a Prometheus metric
//     name and registers instruments with a prometheus.Registerer. The
//     default registerer is controller-runtime's global registry, so
//     instruments surface on the operator's existing /metrics endpoint.
//     Per-job identity travels in constant labels, letting one registry
//     host many job-scoped groups.
//   - InMemoryGroup: records instruments in process memory, addressed by
//     their "/"-joined scope path. Used by tests and by embedders that want
//     instrument introspection without a Prometheus registry.
//
// Dynamic gauges hold no state. Each scrape or lookup invokes the supplied
// callback, so values are always current and a callback must be safe to
// call from any goroutine at any time.
package telemetry
