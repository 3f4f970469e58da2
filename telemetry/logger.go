package telemetry

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTELHook adds trace and span IDs to every log entry
type OTELHook struct{}

func (h OTELHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	// Skip if no context
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	// Extract span from context
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}

	// Add trace context to log
	e.Str("trace_id", span.SpanContext().TraceID().String())
	e.Str("span_id", span.SpanContext().SpanID().String())

	// Add span attributes as log fields for correlation
	if level == zerolog.ErrorLevel {
		span.SetStatus(codes.Error, msg)
	}
}

// Logger wraps zerolog with OTEL integration
type Logger struct {
	zerolog.Logger
}

// NewLogger creates a new logger with OTEL hooks
func NewLogger(service string) *Logger {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	// Create base logger with service context
	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("service", service).
		Logger().
		Hook(OTELHook{})

	return &Logger{Logger: logger}
}

// WithContext returns a logger with context (for trace propagation)
func (l *Logger) WithContext(ctx context.Context) *zerolog.Logger {
	logger := l.Logger.With().Ctx(ctx).Logger()
	return &logger
}

// LogSpanStart logs the start of a span with attributes
func (l *Logger) LogSpanStart(ctx context.Context, spanName string, attrs ...attribute.KeyValue) {
	logger := l.WithContext(ctx)

	event := logger.Info().Str("span_name", spanName)
	for _, attr := range attrs {
		event = addAttributeToEvent(event, attr)
	}
	event.Msg("span started")
}

// LogSpanEnd logs the end of a span with results
func (l *Logger) LogSpanEnd(ctx context.Context, spanName string, err error) {
	logger := l.WithContext(ctx)

	if err != nil {
		logger.Error().
			Err(err).
			Str("span_name", spanName).
			Msg("span failed")
	} else {
		logger.Debug().
			Str("span_name", spanName).
			Msg("span completed")
	}
}

// Helper to convert OTEL attributes to zerolog fields
func addAttributeToEvent(event *zerolog.Event, attr attribute.KeyValue) *zerolog.Event {
	key := string(attr.Key)

	switch attr.Value.Type() {
	case attribute.STRING:
		return event.Str(key, attr.Value.AsString())
	case attribute.INT64:
		return event.Int64(key, attr.Value.AsInt64())
	case attribute.FLOAT64:
		return event.Float64(key, attr.Value.AsFloat64())
	case attribute.BOOL:
		return event.Bool(key, attr.Value.AsBool())
	default:
		return event.Str(key, attr.Value.AsString())
	}
}

// Convenience methods for inventory operations

func (l *Logger) LogTenantStart(ctx context.Context, tenant string, position, total int) {
	l.WithContext(ctx).Info().
		Str("tenant", tenant).
		Int("position", position).
		Int("total", total).
		Str("operation", "tenant_inventory").
		Msg("processing tenant")
}

func (l *Logger) LogTenantComplete(ctx context.Context, tenant string, deviceCount int, duration float64) {
	l.WithContext(ctx).Info().
		Str("tenant", tenant).
		Int("devices", deviceCount).
		Float64("duration_ms", duration).
		Str("operation", "tenant_inventory").
		Msg("tenant complete")
}

func (l *Logger) LogTenantFailure(ctx context.Context, tenant string, stage string, err error) {
	l.WithContext(ctx).Error().
		Err(err).
		Str("tenant", tenant).
		Str("stage", stage).
		Str("operation", "tenant_inventory").
		Msg("tenant failed, continuing with remaining tenants")
}

func (l *Logger) LogFetchPage(ctx context.Context, tenant string, pageSize int, total int) {
	l.WithContext(ctx).Debug().
		Str("tenant", tenant).
		Int("page_devices", pageSize).
		Int("total_so_far", total).
		Str("operation", "fetch_devices").
		Msg("fetched device page")
}

func (l *Logger) LogExport(ctx context.Context, path string, rows int) {
	l.WithContext(ctx).Info().
		Str("path", path).
		Int("rows", rows).
		Str("operation", "export").
		Msg("wrote csv file")
}
