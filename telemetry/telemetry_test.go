package telemetry

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestOTELHook_Run(t *testing.T) {
	tests := []struct {
		name        string
		setupCtx    func() context.Context
		expectTrace bool
	}{
		{
			name: "no context",
			setupCtx: func() context.Context {
				return nil
			},
			expectTrace: false,
		},
		{
			name: "context without span",
			setupCtx: func() context.Context {
				return context.Background()
			},
			expectTrace: false,
		},
		{
			name: "context with valid span",
			setupCtx: func() context.Context {
				return contextWithSpan()
			},
			expectTrace: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			hook := OTELHook{}
			event := logger.Info().Ctx(tt.setupCtx())

			hook.Run(event, zerolog.InfoLevel, "test message")
			event.Msg("test")

			if tt.expectTrace {
				assert.Contains(t, buf.String(), "trace_id")
				assert.Contains(t, buf.String(), "span_id")
			} else {
				assert.NotContains(t, buf.String(), "trace_id")
				assert.NotContains(t, buf.String(), "span_id")
			}
		})
	}
}

// contextWithSpan creates a context with a recording span
func contextWithSpan() context.Context {
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
	)
	tracer := provider.Tracer("test")
	ctx, _ := tracer.Start(context.Background(), "test-span")
	return ctx
}

func TestOTELHook_ErrorLevel(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
	)
	tracer := provider.Tracer("test")
	ctx, span := tracer.Start(context.Background(), "test-span")

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	hook := OTELHook{}
	event := logger.Error().Ctx(ctx)

	hook.Run(event, zerolog.ErrorLevel, "error message")
	event.Msg("test error")

	// Verify span status was set to error
	span.End()
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "error message", spans[0].Status.Description)
}

func TestNewLogger(t *testing.T) {
	// Redirect stderr to capture output
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	logger := NewLogger("ms365")

	// Write a test message
	logger.Info().Msg("test message")

	// Close writer and restore stderr
	_ = w.Close()
	os.Stderr = oldStderr

	// Read captured output
	buf := make([]byte, 1024)
	n, _ := r.Read(buf)
	output := string(buf[:n])

	assert.NotNil(t, logger)
	assert.Contains(t, output, "ms365")
	assert.Contains(t, output, "test message")
}

func TestLogger_LogSpanStart(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: zerolog.New(&buf)}
	ctx := context.Background()

	attrs := []attribute.KeyValue{
		attribute.String("tenant", "contoso.com"),
		attribute.Int("devices", 42),
	}

	logger.LogSpanStart(ctx, "inventory.tenant", attrs...)

	output := buf.String()
	assert.Contains(t, output, "span started")
	assert.Contains(t, output, "inventory.tenant")
	assert.Contains(t, output, "contoso.com")
	assert.Contains(t, output, "42")
}

func TestLogger_LogSpanEnd(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectError bool
	}{
		{
			name:        "successful span",
			err:         nil,
			expectError: false,
		},
		{
			name:        "failed span",
			err:         assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &Logger{Logger: zerolog.New(&buf)}
			ctx := context.Background()

			logger.LogSpanEnd(ctx, "inventory.run", tt.err)

			output := buf.String()
			assert.Contains(t, output, "inventory.run")

			if tt.expectError {
				assert.Contains(t, output, "span failed")
				assert.Contains(t, output, "level\":\"error")
			} else {
				assert.Contains(t, output, "span completed")
				assert.Contains(t, output, "level\":\"debug")
			}
		})
	}
}

func TestLogger_TenantEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: zerolog.New(&buf)}
	ctx := context.Background()

	logger.LogTenantStart(ctx, "contoso.com", 1, 3)
	logger.LogTenantComplete(ctx, "contoso.com", 17, 1250.0)
	logger.LogTenantFailure(ctx, "fabrikam.com", "authenticating", errors.New("code expired"))

	output := buf.String()
	assert.Contains(t, output, "processing tenant")
	assert.Contains(t, output, "tenant complete")
	assert.Contains(t, output, "\"devices\":17")
	assert.Contains(t, output, "continuing with remaining tenants")
	assert.Contains(t, output, "code expired")
	assert.Contains(t, output, "authenticating")
}

func TestAddAttributeToEvent(t *testing.T) {
	tests := []struct {
		name     string
		attr     attribute.KeyValue
		expected string
	}{
		{
			name:     "string attribute",
			attr:     attribute.String("key", "value"),
			expected: "\"key\":\"value\"",
		},
		{
			name:     "int64 attribute",
			attr:     attribute.Int64("count", 42),
			expected: "\"count\":42",
		},
		{
			name:     "float64 attribute",
			attr:     attribute.Float64("rate", 3.14),
			expected: "\"rate\":3.14",
		},
		{
			name:     "bool attribute",
			attr:     attribute.Bool("enabled", true),
			expected: "\"enabled\":true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			event := logger.Info()
			event = addAttributeToEvent(event, tt.attr)
			event.Msg("test")

			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}
