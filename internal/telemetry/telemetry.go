package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ErrInvalidConfig wraps every configuration failure reported by Validate.
var ErrInvalidConfig = errors.New("invalid telemetry configuration")

// Config describes the observability identity and wiring of the service.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	EnableTracing  bool
	EnableMetrics  bool
	SampleRate     float64
}

// Validate rejects configurations the providers cannot be built from.
func (c Config) Validate() error {
	switch {
	case c.ServiceName == "":
		return fmt.Errorf("%w: service name is empty", ErrInvalidConfig)
	case c.ServiceVersion == "":
		return fmt.Errorf("%w: service version is empty", ErrInvalidConfig)
	case c.SampleRate < 0.0 || c.SampleRate > 1.0:
		return fmt.Errorf("%w: sample rate %v outside [0.0, 1.0]", ErrInvalidConfig, c.SampleRate)
	}
	return nil
}

// sampler maps the configured rate onto a trace sampler. 0 disables tracing
// outright and 1 records everything; in between, the decision is ratio-based
// but always follows a sampled parent.
func (c Config) sampler() sdktrace.Sampler {
	switch {
	case c.SampleRate <= 0.0:
		return sdktrace.NeverSample()
	case c.SampleRate >= 1.0:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRate))
	}
}

// Provider owns the lifecycle of whatever tracer and meter providers Setup
// registered globally. Shutdown releases them in reverse setup order.
type Provider struct {
	shutdowns []func(context.Context) error
}

// Option overrides parts of Setup, mainly so tests can swap the OTLP
// exporters for in-process ones.
type Option func(*setupOptions)

type setupOptions struct {
	traceExporter  sdktrace.SpanExporter
	metricExporter sdkmetric.Exporter
}

func WithTraceExporter(exp sdktrace.SpanExporter) Option {
	return func(o *setupOptions) { o.traceExporter = exp }
}

func WithMetricExporter(exp sdkmetric.Exporter) Option {
	return func(o *setupOptions) { o.metricExporter = exp }
}

// Setup validates the config, builds the enabled providers, and installs them
// as the process-wide OTel defaults. A partially built stack is torn down
// before the error is returned.
func Setup(ctx context.Context, cfg Config, opts ...Option) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options setupOptions
	for _, opt := range opts {
		opt(&options)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	p := &Provider{}

	if cfg.EnableTracing {
		exp := options.traceExporter
		if exp == nil {
			// Plaintext gRPC: the collector sits on the same host/network and
			// does not terminate TLS.
			exp, err = otlptracegrpc.New(ctx,
				otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
				otlptracegrpc.WithInsecure(),
			)
			if err != nil {
				return nil, fmt.Errorf("create trace exporter: %w", err)
			}
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(cfg.sampler()),
			sdktrace.WithBatcher(exp),
		)
		otel.SetTracerProvider(tp)
		p.shutdowns = append(p.shutdowns, tp.Shutdown, exp.Shutdown)
	}

	if cfg.EnableMetrics {
		exp := options.metricExporter
		if exp == nil {
			exp, err = otlpmetricgrpc.New(ctx,
				otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
				otlpmetricgrpc.WithInsecure(),
			)
			if err != nil {
				_ = p.Shutdown(ctx)
				return nil, fmt.Errorf("create metric exporter: %w", err)
			}
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		)
		otel.SetMeterProvider(mp)
		p.shutdowns = append(p.shutdowns, mp.Shutdown, exp.Shutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return p, nil
}

// Shutdown flushes and releases everything Setup built, most recent first,
// collecting every failure rather than stopping at the first.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(p.shutdowns) - 1; i >= 0; i-- {
		if err := p.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
