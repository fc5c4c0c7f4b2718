package logger

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"ojplay/pkg/utils/contextkey"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger atomic.Pointer[Logger]

// Logger wraps zap logger with context support
type Logger struct {
	zap *zap.Logger
}

// Config holds logger configuration
type Config struct {
	Level      string `yaml:"level"`      // debug, info, warn, error
	Format     string `yaml:"format"`     // json, console
	OutputPath string `yaml:"outputPath"` // file path, "stdout" or "stderr"
}

// Init initializes the global logger
func Init(cfg Config) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	globalLogger.Store(logger)
	return nil
}

// NewLogger creates a new logger instance
func NewLogger(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	writeSyncer, err := openSink(cfg.OutputPath)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return &Logger{zap: zapLogger}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// FromZap wraps an existing zap logger.
func FromZap(z *zap.Logger) *Logger {
	return &Logger{zap: z}
}

func openSink(path string) (zapcore.WriteSyncer, error) {
	switch path {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return zapcore.AddSync(file), nil
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(time.RFC3339))
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// WithContext returns the zap logger enriched with request, job and problem ids from ctx.
func (l *Logger) WithContext(ctx context.Context) *zap.Logger {
	fields := extractFieldsFromContext(ctx)
	if len(fields) == 0 {
		return l.zap
	}
	return l.zap.With(fields...)
}

func extractFieldsFromContext(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	var fields []zap.Field
	if requestID, ok := ctx.Value(contextkey.RequestID).(string); ok && requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if jobID, ok := ctx.Value(contextkey.JobID).(string); ok && jobID != "" {
		fields = append(fields, zap.String("job_id", jobID))
	}
	if problemID, ok := ctx.Value(contextkey.ProblemID).(int64); ok {
		fields = append(fields, zap.Int64("problem_id", problemID))
	}
	return fields
}

// WithJobID tags ctx so log lines carry the job id.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, contextkey.JobID, jobID)
}

// WithProblemID tags ctx so log lines carry the problem id.
func WithProblemID(ctx context.Context, problemID int64) context.Context {
	return context.WithValue(ctx, contextkey.ProblemID, problemID)
}

// WithRequestID tags ctx so log lines carry the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkey.RequestID, requestID)
}

// RequestIDFrom returns the request id stored in ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextkey.RequestID).(string)
	return id
}

// Debug logs a debug message
func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	if l := globalLogger.Load(); l != nil {
		l.WithContext(ctx).Debug(msg, fields...)
	}
}

// Info logs an info message
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	if l := globalLogger.Load(); l != nil {
		l.WithContext(ctx).Info(msg, fields...)
	}
}

// Warn logs a warning message
func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	if l := globalLogger.Load(); l != nil {
		l.WithContext(ctx).Warn(msg, fields...)
	}
}

// Error logs an error message
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	if l := globalLogger.Load(); l != nil {
		l.WithContext(ctx).Error(msg, fields...)
	}
}

// Fatal logs a fatal message and exits
func Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	if l := globalLogger.Load(); l != nil {
		l.WithContext(ctx).Fatal(msg, fields...)
	}
	os.Exit(1)
}

// Sync flushes the global logger
func Sync() error {
	if l := globalLogger.Load(); l != nil {
		return l.Sync()
	}
	return nil
}

// SetLogger replaces the global logger. Passing nil disables logging.
func SetLogger(l *Logger) {
	globalLogger.Store(l)
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	return globalLogger.Load()
}
