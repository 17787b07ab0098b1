package logger

import (
	"context"

	"go.uber.org/zap"
)

type key string

const (
	// KeyForLogger is used to store Logger in a context.Context
	KeyForLogger key = "logger"
	// KeyForRequestID is used to store some request ID in a context.Context, purely optional to use
	KeyForRequestID key = "request_id"
)

// Logger is a type that stores a pointer on zap.Logger
//
// Supposed to be stored in context.Context
type Logger struct {
	l *zap.Logger
}

// NewLogger creates a new production Logger, might return an error because of zap
func NewLogger() (*Logger, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{l: zapLogger}, nil
}

// FromZap wraps an existing zap.Logger, e.g. zap.NewDevelopment() for the CLI or an observer in tests
func FromZap(zapLogger *zap.Logger) *Logger {
	return &Logger{l: zapLogger}
}

// New creates a new context.Context with a new production logger placed in it
func New(ctx context.Context) (context.Context, error) {
	loggerStruct, err := NewLogger()
	if err != nil {
		return ctx, err
	}
	return WithLogger(ctx, loggerStruct), nil
}

// WithLogger places given Logger into ctx
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, KeyForLogger, l)
}

// WithRequestID places the request ID into ctx, every log line made with this ctx gets it as a field
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyForRequestID, requestID)
}

// RequestIDFromCtx returns the request ID set by WithRequestID, "" if none
func RequestIDFromCtx(ctx context.Context) string {
	requestID, _ := ctx.Value(KeyForRequestID).(string)
	return requestID
}

// GetLoggerFromCtx gets Logger from given ctx if present, else panic
func GetLoggerFromCtx(ctx context.Context) *Logger {
	return ctx.Value(KeyForLogger).(*Logger)
}

// GetOrCreateLoggerFromCtx is a safe version on GetLoggerFromCtx that creates a new logger if no logger is in ctx
func GetOrCreateLoggerFromCtx(ctx context.Context) *Logger {
	l, ok := ctx.Value(KeyForLogger).(*Logger)
	if ok && l != nil {
		return l
	}
	l, err := NewLogger()
	if err != nil {
		return &Logger{l: zap.NewNop()}
	}
	return l
}

// TryAppendRequestIDFromContext appends a field with ID of current request if it's in given context
// (check KeyForRequestID)
func TryAppendRequestIDFromContext(ctx context.Context, fields []zap.Field) []zap.Field {
	if requestID := RequestIDFromCtx(ctx); requestID != "" {
		fields = append(fields, zap.String(string(KeyForRequestID), requestID))
	}
	return fields
}

// Named returns a child Logger with the name appended, e.g. "view.order_detail"
func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name)}
}

// With returns a child Logger that always adds given fields
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{l: l.l.With(fields...)}
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.l.Sync()
}

// Debug makes a debug level message
func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	fields = TryAppendRequestIDFromContext(ctx, fields)
	l.l.Debug(msg, fields...)
}

// Info makes an info level message
func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	fields = TryAppendRequestIDFromContext(ctx, fields)
	l.l.Info(msg, fields...)
}

// Warn makes a warn level message
func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	fields = TryAppendRequestIDFromContext(ctx, fields)
	l.l.Warn(msg, fields...)
}

// Error makes an error level message
func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	fields = TryAppendRequestIDFromContext(ctx, fields)
	l.l.Error(msg, fields...)
}

// Fatal makes a fatal level message
func (l *Logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	fields = TryAppendRequestIDFromContext(ctx, fields)
	l.l.Fatal(msg, fields...)
}
