package logging

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Loggers are no-ops until InitLogger runs, so packages can log from tests
// without any setup.
var (
	AppLogger     = zap.NewNop()
	RequestLogger = zap.NewNop()
	TimerLogger   = zap.NewNop()
	ErrorLogger   = zap.NewNop()
)

type ctxKey string

const traceIDKey ctxKey = "trace_id"

// WithTraceID tags ctx with the id of the current research run.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

// TraceID returns the run id stored by WithTraceID, or "".
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// ensureLogsDir makes sure the log folder exists
func ensureLogsDir(dir string) error {
	return os.MkdirAll(dir, os.ModePerm)
}

func rotatingCore(encoder zapcore.Encoder, path string, maxSize, maxAge int, level zapcore.Level) zapcore.Core {
	return zapcore.NewCore(encoder,
		zapcore.AddSync(&lumberjack.Logger{
			Filename: path, MaxSize: maxSize, MaxAge: maxAge, Compress: true,
		}),
		level,
	)
}

// InitLogger points the package loggers at rotating JSON files under dir.
func InitLogger(dir string) error {
	if dir == "" {
		dir = "./logs"
	}
	if err := ensureLogsDir(dir); err != nil {
		return err
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	AppLogger = zap.New(rotatingCore(encoder, filepath.Join(dir, "app.log"), 100, 28, zap.InfoLevel))
	RequestLogger = zap.New(rotatingCore(encoder, filepath.Join(dir, "request.log"), 50, 7, zap.InfoLevel))
	TimerLogger = zap.New(rotatingCore(encoder, filepath.Join(dir, "timer.log"), 50, 7, zap.InfoLevel))
	ErrorLogger = zap.New(rotatingCore(encoder, filepath.Join(dir, "error.log"), 100, 30, zap.ErrorLevel))
	return nil
}

// Sync flushes every logger. Call it before the process exits.
func Sync() {
	for _, l := range []*zap.Logger{AppLogger, RequestLogger, TimerLogger, ErrorLogger} {
		_ = l.Sync()
	}
}

// LogDuration lets you do: defer logging.LogDuration(ctx, "FuncName")()
func LogDuration(ctx context.Context, name string) func() {
	start := time.Now()
	traceID := TraceID(ctx)

	return func() {
		fields := []zap.Field{
			zap.String("func", name),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		// write ONLY to timer.log
		TimerLogger.Info("Function timed", fields...)
	}
}
