package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOpsTotal       = "intervals.operations.total"
	metricOpDuration     = "intervals.operation.duration.seconds"
	metricErrorsTotal    = "intervals.errors.total"
	metricInputSize      = "intervals.operation.input.intervals"
	metricOutputSize     = "intervals.operation.output.intervals"
	metricColorsAssigned = "intervals.coloring.colors"

	attrOp     = "op"
	attrStatus = "status"

	// StatusOK marks a successful operation.
	StatusOK = "ok"
	// StatusError marks a failed operation.
	StatusError = "error"
)

// durationBucketBoundaries covers 10us to 10s; interval operations are
// in-memory sweeps whose cost grows with input size only.
var durationBucketBoundaries = []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}

// sizeBucketBoundaries covers list sizes from a handful to a million intervals.
var sizeBucketBoundaries = []float64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000}

// OpStats describes one completed operation.
type OpStats struct {
	Op       string
	Status   string
	Duration time.Duration
	Inputs   int
	Outputs  int
}

// OpMetrics holds the OTel instruments for rate, errors, duration and
// input/output sizes of interval operations.
type OpMetrics struct {
	opsTotal    metric.Int64Counter
	opDuration  metric.Float64Histogram
	errorsTotal metric.Int64Counter
	inputSize   metric.Int64Histogram
	outputSize  metric.Int64Histogram
	colors      metric.Int64Histogram
}

// NewOpMetrics creates operation metric instruments from the given meter.
func NewOpMetrics(mt metric.Meter) (*OpMetrics, error) {
	opsTotal, err := mt.Int64Counter(metricOpsTotal,
		metric.WithDescription("Total number of interval operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOpsTotal, err)
	}

	opDuration, err := mt.Float64Histogram(metricOpDuration,
		metric.WithDescription("Operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOpDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	inputSize, err := mt.Int64Histogram(metricInputSize,
		metric.WithDescription("Number of input intervals per operation"),
		metric.WithUnit("{interval}"),
		metric.WithExplicitBucketBoundaries(sizeBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricInputSize, err)
	}

	outputSize, err := mt.Int64Histogram(metricOutputSize,
		metric.WithDescription("Number of output intervals per operation"),
		metric.WithUnit("{interval}"),
		metric.WithExplicitBucketBoundaries(sizeBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOutputSize, err)
	}

	colors, err := mt.Int64Histogram(metricColorsAssigned,
		metric.WithDescription("Number of colors used by a coloring run"),
		metric.WithUnit("{color}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricColorsAssigned, err)
	}

	return &OpMetrics{
		opsTotal:    opsTotal,
		opDuration:  opDuration,
		errorsTotal: errTotal,
		inputSize:   inputSize,
		outputSize:  outputSize,
		colors:      colors,
	}, nil
}

// RecordOp records a completed operation.
// Safe to call on a nil receiver (no-op).
func (om *OpMetrics) RecordOp(ctx context.Context, stats OpStats) {
	if om == nil {
		return
	}

	opAttr := attribute.String(attrOp, stats.Op)
	attrs := metric.WithAttributes(opAttr, attribute.String(attrStatus, stats.Status))

	om.opsTotal.Add(ctx, 1, attrs)
	om.opDuration.Record(ctx, stats.Duration.Seconds(), attrs)

	if stats.Status == StatusError {
		om.errorsTotal.Add(ctx, 1, metric.WithAttributes(opAttr))

		return
	}

	om.inputSize.Record(ctx, int64(stats.Inputs), metric.WithAttributes(opAttr))
	om.outputSize.Record(ctx, int64(stats.Outputs), metric.WithAttributes(opAttr))
}

// RecordColors records the color count of a coloring run.
// Safe to call on a nil receiver (no-op).
func (om *OpMetrics) RecordColors(ctx context.Context, variant string, colors int) {
	if om == nil {
		return
	}

	om.colors.Record(ctx, int64(colors), metric.WithAttributes(attribute.String(attrOp, variant)))
}
