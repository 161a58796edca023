// Package logger provides a global, context-aware Zap logger.
//
// Logs are JSON on stdout and, once telemetry is initialized, are also bridged
// to the OpenTelemetry LoggerProvider. Every entry carries the trace and span
// IDs found in the context. Before Init is called, all log calls are no-ops.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/walletwatch/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey struct{}

var (
	// baseLogger is the process-wide logger. It stays nil until Init succeeds.
	baseLogger *zap.SugaredLogger

	// initBaseLoggerOnce guards the one-time setup of baseLogger.
	initBaseLoggerOnce sync.Once

	// nopLogger serves log calls made before Init.
	nopLogger = zap.NewNop().Sugar()

	// ctxKey stores a derived logger in a context.
	ctxKey = contextKey{}
)

// Init configures the global logger at the given level ("debug", "info",
// "warn", "error", "panic" or "fatal"). Calls after the first successful one
// have no effect.
//
// Returns an error if level cannot be parsed.
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		baseLogger = build(lvl, zapcore.AddSync(os.Stdout))
	})

	return nil
}

// build writes JSON entries at lvl or above to out, teeing them to the
// telemetry LoggerProvider when one is installed.
func build(lvl zapcore.Level, out zapcore.WriteSyncer) *zap.SugaredLogger {
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, lvl),
	}

	if lp := telemetry.LoggerProvider(); lp != nil {
		cores = append(cores, otelzap.NewCore("github.com/gabapcia/walletwatch", otelzap.WithLoggerProvider(lp)))
	}

	return zap.New(zapcore.NewTee(cores...)).Sugar()
}

// root returns the configured logger or the no-op one.
func root() *zap.SugaredLogger {
	if baseLogger == nil {
		return nopLogger
	}
	return baseLogger
}

// deriveFromCtx returns the logger stored in ctx (or the root logger) enriched
// with the active trace and span IDs and the given key/value pairs.
func deriveFromCtx(ctx context.Context, keysAndValues ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
	if !ok {
		l = root()
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	} else {
		if sc.HasTraceID() {
			l = l.With("trace_id", sc.TraceID().String())
		}
		if sc.HasSpanID() {
			l = l.With("span_id", sc.SpanID().String())
		}
	}

	if len(keysAndValues) > 0 {
		l = l.With(keysAndValues...)
	}

	return l
}

// Derive returns a copy of ctx whose logger carries keysAndValues on every
// subsequent entry.
func Derive(ctx context.Context, keysAndValues ...any) context.Context {
	l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger)
	if !ok {
		l = root()
	}
	return context.WithValue(ctx, ctxKey, l.With(keysAndValues...))
}

// Sync flushes buffered entries. Call it on shutdown.
func Sync() error {
	return root().Sync()
}

func log(ctx context.Context, level zapcore.Level, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Logw(level, msg, keysAndValues...)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues...)
}

// Panic logs a panic-level message and then panics.
func Panic(ctx context.Context, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Panicw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message and then exits the process.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Fatalw(msg, keysAndValues...)
}
