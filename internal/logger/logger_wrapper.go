package logger

import (
	"sync"
	"time"

	"github.com/leandrodaf/seqtree/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
type ZapLogger struct {
	mu     sync.RWMutex
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a production zap logger writing JSON to standard error.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return &ZapLogger{logger: build(level, "stderr"), level: level}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() contracts.Logger {
	return &ZapLogger{logger: zap.NewNop(), level: zap.NewAtomicLevel()}
}

func build(level zap.AtomicLevel, output string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Info logs a message at the INFO level.
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.current().Info(msg, toZap(fields)...)
}

// Error logs a message at the ERROR level.
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.current().Error(msg, toZap(fields)...)
}

// Debug logs a message at the DEBUG level.
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.current().Debug(msg, toZap(fields)...)
}

// Warn logs a message at the WARN level.
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.current().Warn(msg, toZap(fields)...)
}

// Fatal logs a message at the FATAL level and terminates the process.
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.current().Fatal(msg, toZap(fields)...)
}

// Field returns a field builder.
func (z *ZapLogger) Field() contracts.Field {
	return zapField{}
}

// SetLevel changes the minimum level that gets written.
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(zapLevel(level))
}

// SetDestination redirects output to the console or to the given file.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) {
	output := "stderr"
	if dest == contracts.FileLog && len(filePath) > 0 && filePath[0] != "" {
		output = filePath[0]
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	_ = z.logger.Sync()
	z.logger = build(z.level, output)
}

func (z *ZapLogger) current() *zap.Logger {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.logger
}

func zapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZap(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if zf, ok := f.(zapField); ok && zf.key != "" {
			out = append(out, zf.field)
		}
	}
	return out
}

// zapField implements contracts.Field. The zero value is a builder.
type zapField struct {
	key   string
	field zap.Field
}

func (zapField) Bool(key string, val bool) contracts.Field {
	return zapField{key, zap.Bool(key, val)}
}

func (zapField) Int(key string, val int) contracts.Field {
	return zapField{key, zap.Int(key, val)}
}

func (zapField) Float64(key string, val float64) contracts.Field {
	return zapField{key, zap.Float64(key, val)}
}

func (zapField) String(key string, val string) contracts.Field {
	return zapField{key, zap.String(key, val)}
}

func (zapField) Time(key string, val time.Time) contracts.Field {
	return zapField{key, zap.Time(key, val)}
}

func (zapField) Duration(key string, val time.Duration) contracts.Field {
	return zapField{key, zap.Duration(key, val)}
}

func (zapField) Int64(key string, val int64) contracts.Field {
	return zapField{key, zap.Int64(key, val)}
}

func (zapField) Error(key string, val error) contracts.Field {
	return zapField{key, zap.NamedError(key, val)}
}

func (zapField) Uint64(key string, val uint64) contracts.Field {
	return zapField{key, zap.Uint64(key, val)}
}

func (zapField) Uint8(key string, val uint8) contracts.Field {
	return zapField{key, zap.Uint8(key, val)}
}
