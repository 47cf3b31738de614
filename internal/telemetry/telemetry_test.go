package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
)

func validConfig() Config {
	return Config{
		ServiceName:    "orders-api",
		ServiceVersion: "0.1.0",
		Environment:    "test",
		EnableTracing:  true,
		EnableMetrics:  true,
		SampleRate:     1.0,
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing service name", mutate: func(c *Config) { c.ServiceName = "" }, wantErr: true},
		{name: "missing service version", mutate: func(c *Config) { c.ServiceVersion = "" }, wantErr: true},
		{name: "negative sample rate", mutate: func(c *Config) { c.SampleRate = -0.1 }, wantErr: true},
		{name: "sample rate above one", mutate: func(c *Config) { c.SampleRate = 1.1 }, wantErr: true},
		{name: "zero sample rate is valid", mutate: func(c *Config) { c.SampleRate = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestSetup(t *testing.T) {
	t.Run("installs providers for tracing and metrics", func(t *testing.T) {
		ctx := context.Background()

		p, err := Setup(ctx, validConfig(),
			WithTraceExporter(DiscardTraceExporter()),
			WithMetricExporter(DiscardMetricExporter()),
		)
		if err != nil {
			t.Fatalf("Setup() failed: %v", err)
		}
		defer func() {
			if err := p.Shutdown(ctx); err != nil {
				t.Errorf("Shutdown() failed: %v", err)
			}
		}()

		if otel.GetTracerProvider() == nil {
			t.Error("expected a global tracer provider")
		}
		if otel.GetMeterProvider() == nil {
			t.Error("expected a global meter provider")
		}
	})

	t.Run("skips disabled signals", func(t *testing.T) {
		ctx := context.Background()
		cfg := validConfig()
		cfg.EnableTracing = false
		cfg.EnableMetrics = false

		p, err := Setup(ctx, cfg)
		if err != nil {
			t.Fatalf("Setup() failed: %v", err)
		}

		if len(p.shutdowns) != 0 {
			t.Errorf("expected nothing to shut down, got %d entries", len(p.shutdowns))
		}

		if err := p.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown() failed: %v", err)
		}
	})

	t.Run("rejects an invalid config before building anything", func(t *testing.T) {
		cfg := validConfig()
		cfg.ServiceName = ""

		if _, err := Setup(context.Background(), cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig, got: %v", err)
		}
	})

	t.Run("shutdown collects failures instead of stopping", func(t *testing.T) {
		wantErr := errors.New("flush failed")
		p := &Provider{shutdowns: []func(context.Context) error{
			func(context.Context) error { return wantErr },
			func(context.Context) error { return nil },
		}}

		if err := p.Shutdown(context.Background()); !errors.Is(err, wantErr) {
			t.Fatalf("expected wrapped shutdown error, got: %v", err)
		}
	})
}
