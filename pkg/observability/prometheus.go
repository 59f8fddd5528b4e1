package observability

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
)

// ErrNoRegistry is returned by DumpMetrics when Prometheus collection is off.
var ErrNoRegistry = errors.New("prometheus dump is not enabled")

// newPrometheusReader creates a Prometheus exporter registered on its own
// registry. Each call gets an independent registry to avoid collector
// conflicts when Init runs more than once in a process.
func newPrometheusReader() (*prometheus.Registry, *promexporter.Exporter, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(
		promexporter.WithRegisterer(registry),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return registry, exporter, nil
}

// DumpMetrics writes every metric gathered so far to w in the Prometheus
// text exposition format.
func (p Providers) DumpMetrics(w io.Writer) error {
	if p.Registry == nil {
		return ErrNoRegistry
	}

	families, err := p.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		if _, writeErr := expfmt.MetricFamilyToText(w, mf); writeErr != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), writeErr)
		}
	}

	return nil
}
