package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/intervals/pkg/config"
	"github.com/Sumatoshi-tech/intervals/pkg/intervalio"
	"github.com/Sumatoshi-tech/intervals/pkg/observability"
	"github.com/Sumatoshi-tech/intervals/pkg/render"
	"github.com/Sumatoshi-tech/intervals/pkg/version"
)

// session carries what one command invocation needs: loaded configuration,
// telemetry providers and a renderer bound to the command's stdout.
type session struct {
	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.OpMetrics
	logger    *slog.Logger
	renderer  *render.Renderer
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	color     bool
}

func openSession(cmd *cobra.Command, opts *GlobalOptions, mode observability.AppMode) (*session, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.PrometheusDump = cfg.Telemetry.PrometheusDump
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON
	obsCfg.LogLevel = cfg.Logging.SlogLevel()

	switch {
	case opts.Verbose:
		obsCfg.LogLevel = slog.LevelDebug
		obsCfg.DebugTrace = true
	case opts.Quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewOpMetrics(providers.Meter)
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	format := cfg.Output.Format
	if opts.Output != "" {
		format = opts.Output
	}

	out := cmd.OutOrStdout()
	if opts.Quiet {
		out = io.Discard
	}

	useColor := cfg.Output.Color && !color.NoColor

	renderer, err := render.New(out, render.Options{
		Format:   format,
		Color:    useColor,
		Humanize: cfg.Output.Humanize,
	})
	if err != nil {
		return nil, errors.Join(err, providers.Shutdown(context.Background()))
	}

	return &session{
		cfg:       cfg,
		providers: providers,
		metrics:   metrics,
		logger:    providers.Logger,
		renderer:  renderer,
		stdin:     cmd.InOrStdin(),
		stdout:    out,
		stderr:    cmd.ErrOrStderr(),
		color:     useColor,
	}, nil
}

// close flushes telemetry and, when enabled, dumps metrics to stderr.
func (s *session) close(ctx context.Context) error {
	var dumpErr error

	if s.cfg.Telemetry.PrometheusDump {
		dumpErr = s.providers.DumpMetrics(s.stderr)
	}

	return errors.Join(dumpErr, s.providers.Shutdown(ctx))
}

// run wraps one interval operation in a span, records its metrics and logs
// its outcome. fn returns the number of intervals it produced.
func (s *session) run(ctx context.Context, op string, inputs int, fn func(ctx context.Context) (int, error)) error {
	ctx = observability.WithOp(ctx, op)

	ctx, span := s.providers.Tracer.Start(ctx, "intervals."+op, trace.WithAttributes(
		attribute.String(observability.AttrOp, op),
		attribute.Int(observability.AttrInputs, inputs),
	))
	defer span.End()

	start := time.Now()
	outputs, err := fn(ctx)
	elapsed := time.Since(start)

	stats := observability.OpStats{Op: op, Status: observability.StatusOK, Duration: elapsed, Inputs: inputs, Outputs: outputs}

	if err != nil {
		stats.Status = observability.StatusError

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(observability.AttrErrorClass, errorClass(err)))
		s.logger.ErrorContext(ctx, "operation failed", "inputs", inputs, "error", err)
	} else {
		span.SetAttributes(attribute.Int(observability.AttrOutputs, outputs))
		s.logger.DebugContext(ctx, "operation finished", "inputs", inputs, "outputs", outputs, "duration", elapsed)
	}

	s.metrics.RecordOp(ctx, stats)

	return err
}

// load reads the document at path, or stdin for "-", inside its own span.
func (s *session) load(ctx context.Context, path string) (*intervalio.Document, error) {
	var doc *intervalio.Document

	err := s.run(ctx, "load", 0, func(ctx context.Context) (int, error) {
		var (
			loaded  *intervalio.Document
			loadErr error
		)

		if path == "-" {
			loaded, loadErr = intervalio.Read(s.stdin)
		} else {
			loaded, loadErr = intervalio.Load(path)
		}

		if loadErr != nil {
			return 0, loadErr
		}

		doc = loaded

		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int(observability.AttrLists, len(doc.Lists)),
			attribute.Int(observability.AttrStoreOps, len(doc.Ops)),
		)

		return countIntervals(doc.PlainLists()...), nil
	})

	return doc, err
}

// withSession opens a session, runs fn and closes the session.
func withSession(
	cmd *cobra.Command, opts *GlobalOptions, mode observability.AppMode,
	fn func(ctx context.Context, s *session) error,
) error {
	s, err := openSession(cmd, opts, mode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runErr := fn(ctx, s)

	return errors.Join(runErr, s.close(context.Background()))
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, intervalio.ErrSchema):
		return "schema"
	case errors.Is(err, intervalio.ErrSyntax):
		return "syntax"
	case errors.Is(err, intervalio.ErrUnknownList):
		return "unknown_list"
	default:
		return "invalid_input"
	}
}
