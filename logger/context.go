package logger

import (
	"context"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// Context keys for common logging fields.
// These keys are used to store values in context.Context that will be
// automatically extracted and added to log entries.
const (
	// ContextKeyParseID identifies one report parse operation.
	ContextKeyParseID contextKey = "parse_id"

	// ContextKeySource identifies the report source, typically a file path.
	ContextKeySource contextKey = "source"

	// ContextKeyFormat identifies the report format, "xml" or "json".
	ContextKeyFormat contextKey = "format"

	// ContextKeyCorrelationID is used for distributed tracing.
	ContextKeyCorrelationID contextKey = "correlation_id"

	// ContextKeyEnvironment identifies the deployment environment.
	ContextKeyEnvironment contextKey = "environment"
)

// allContextKeys lists all context keys that should be extracted for logging.
// This is used by the handler to iterate over all possible context values.
var allContextKeys = []contextKey{
	ContextKeyParseID,
	ContextKeySource,
	ContextKeyFormat,
	ContextKeyCorrelationID,
	ContextKeyEnvironment,
}

// WithParseID returns a new context with the parse ID set.
func WithParseID(ctx context.Context, parseID string) context.Context {
	return context.WithValue(ctx, ContextKeyParseID, parseID)
}

// WithSource returns a new context with the report source set.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, ContextKeySource, source)
}

// WithFormat returns a new context with the report format set.
func WithFormat(ctx context.Context, format string) context.Context {
	return context.WithValue(ctx, ContextKeyFormat, format)
}

// WithCorrelationID returns a new context with the correlation ID set.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, ContextKeyCorrelationID, correlationID)
}

// WithEnvironment returns a new context with the environment set.
func WithEnvironment(ctx context.Context, environment string) context.Context {
	return context.WithValue(ctx, ContextKeyEnvironment, environment)
}

// LoggingFields holds all standard logging context fields.
// This struct is used with WithLoggingContext for bulk field setting.
type LoggingFields struct {
	ParseID       string
	Source        string
	Format        string
	CorrelationID string
	Environment   string
}

// WithLoggingContext returns a new context with multiple logging fields set at once.
// This is a convenience function for setting multiple fields in one call.
// Only non-empty values are set.
func WithLoggingContext(ctx context.Context, fields *LoggingFields) context.Context {
	if fields == nil {
		return ctx
	}
	if fields.ParseID != "" {
		ctx = WithParseID(ctx, fields.ParseID)
	}
	if fields.Source != "" {
		ctx = WithSource(ctx, fields.Source)
	}
	if fields.Format != "" {
		ctx = WithFormat(ctx, fields.Format)
	}
	if fields.CorrelationID != "" {
		ctx = WithCorrelationID(ctx, fields.CorrelationID)
	}
	if fields.Environment != "" {
		ctx = WithEnvironment(ctx, fields.Environment)
	}
	return ctx
}

// ExtractLoggingFields extracts all logging fields from a context.
// Returns a LoggingFields struct with all values found in the context.
func ExtractLoggingFields(ctx context.Context) LoggingFields {
	fields := LoggingFields{}
	if v := ctx.Value(ContextKeyParseID); v != nil {
		fields.ParseID, _ = v.(string)
	}
	if v := ctx.Value(ContextKeySource); v != nil {
		fields.Source, _ = v.(string)
	}
	if v := ctx.Value(ContextKeyFormat); v != nil {
		fields.Format, _ = v.(string)
	}
	if v := ctx.Value(ContextKeyCorrelationID); v != nil {
		fields.CorrelationID, _ = v.(string)
	}
	if v := ctx.Value(ContextKeyEnvironment); v != nil {
		fields.Environment, _ = v.(string)
	}
	return fields
}
