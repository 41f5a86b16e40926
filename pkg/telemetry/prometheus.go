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
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/model"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/bjhaid/flink-kubernetes-operator/internal/logging"
)

// PrometheusGroup is a Group backed by a prometheus.Registerer. The scope
// chain is flattened into the metric name with "_" separators, so a gauge
// "Current" under groups "jobVertexID" and "bc76..." becomes
// <namespace>_jobVertexID_bc76..._Current. Per-job identity is carried in
// constant labels, which lets one registry host groups for many jobs.
type PrometheusGroup struct {
	registerer prometheus.Registerer
	namespace  string
	labels     prometheus.Labels
	scope      []string
}

// NewPrometheusGroup returns a root group registering instruments with reg.
// constLabels may be nil; when set, every instrument created under the group
// carries them.
func NewPrometheusGroup(reg prometheus.Registerer, namespace string, constLabels prometheus.Labels) *PrometheusGroup {
	return &PrometheusGroup{
		registerer: reg,
		namespace:  sanitizeNamePart(namespace),
		labels:     constLabels,
	}
}

// DefaultPrometheusGroup returns a root group registering instruments with
// the controller-runtime global registry, so they surface on the operator's
// /metrics endpoint without further wiring.
func DefaultPrometheusGroup(namespace string, constLabels prometheus.Labels) *PrometheusGroup {
	return NewPrometheusGroup(metrics.Registry, namespace, constLabels)
}

// Counter implements Group. A counter that was already registered under the
// same name and labels is reused, so repeated calls return handles to the
// same underlying value.
func (g *PrometheusGroup) Counter(name string) Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        g.fqName(name),
		Help:        g.help(name),
		ConstLabels: g.labels,
	})
	if err := g.register(c, name); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return promCounter{existing}
			}
		}
		ctrl.Log.Error(err, "Failed to register counter", "name", g.fqName(name))
	}
	// An unregistered counter still counts, it is just never scraped.
	return promCounter{c}
}

// Gauge implements Group. The value callback is invoked on every scrape. A
// gauge already registered under the same name keeps its original callback;
// the new one is dropped.
func (g *PrometheusGroup) Gauge(name string, value func() float64) {
	gf := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        g.fqName(name),
		Help:        g.help(name),
		ConstLabels: g.labels,
	}, value)
	if err := g.register(gf, name); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ctrl.Log.V(logging.DEBUG).Info("Gauge already registered, keeping existing callback", "name", g.fqName(name))
			return
		}
		ctrl.Log.Error(err, "Failed to register gauge", "name", g.fqName(name))
	}
}

// AddGroup implements Group.
func (g *PrometheusGroup) AddGroup(name string) Group {
	scope := make([]string, 0, len(g.scope)+1)
	scope = append(scope, g.scope...)
	scope = append(scope, name)
	return &PrometheusGroup{
		registerer: g.registerer,
		namespace:  g.namespace,
		labels:     g.labels,
		scope:      scope,
	}
}

func (g *PrometheusGroup) register(c prometheus.Collector, name string) error {
	fq := g.fqName(name)
	if !model.MetricNameRE.MatchString(fq) {
		ctrl.Log.Info("Dropping instrument with unusable name", "name", fq)
		return nil
	}
	return g.registerer.Register(c)
}

func (g *PrometheusGroup) fqName(name string) string {
	parts := make([]string, 0, len(g.scope)+2)
	if g.namespace != "" {
		parts = append(parts, g.namespace)
	}
	for _, p := range g.scope {
		parts = append(parts, sanitizeNamePart(p))
	}
	parts = append(parts, sanitizeNamePart(name))
	return strings.Join(parts, "_")
}

func (g *PrometheusGroup) help(name string) string {
	return "Autoscaler metric " + strings.Join(append(append([]string{}, g.scope...), name), ".") + "."
}

// sanitizeNamePart maps runes outside the Prometheus metric-name charset to
// underscores.
func sanitizeNamePart(part string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, part)
}

// promCounter adapts a prometheus.Counter to the Counter interface.
type promCounter struct {
	c prometheus.Counter
}

func (p promCounter) Inc() { p.c.Inc() }

func (p promCounter) Add(n int64) {
	if n < 0 {
		return
	}
	p.c.Add(float64(n))
}
