package logger

import (
	"context"
	"os"
	"strings"

	"github.com/CE-Thesis-2023/infiniti/internal/configs"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger = zap.NewNop()

type Options struct {
	globalConfigs *configs.LoggerConfigs
}

type Optioner func(o *Options)

func WithGlobalConfigs(c *configs.LoggerConfigs) Optioner {
	return func(o *Options) {
		o.globalConfigs = c
	}
}

func Init(ctx context.Context, options ...Optioner) {
	opts := &Options{}
	for _, o := range options {
		o(opts)
	}
	if opts.globalConfigs == nil {
		opts.globalConfigs = &configs.LoggerConfigs{}
	}

	encoderConfigs := zap.NewProductionEncoderConfig()
	encoderConfigs.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(opts.globalConfigs.Encoding) {
	case "console":
		encoderConfigs.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfigs)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfigs)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.Lock(os.Stderr),
		parseLevel(opts.globalConfigs.Level))

	globalLogger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	zap.ReplaceGlobals(globalLogger)
}

func parseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

func Logger() *zap.Logger {
	return globalLogger
}

func Close() {
	_ = globalLogger.Sync()
}

func SDebug(msg string, fields ...zap.Field) {
	globalLogger.Debug(msg, fields...)
}

func SInfo(msg string, fields ...zap.Field) {
	globalLogger.Info(msg, fields...)
}

func SWarn(msg string, fields ...zap.Field) {
	globalLogger.Warn(msg, fields...)
}

func SError(msg string, fields ...zap.Field) {
	globalLogger.Error(msg, fields...)
}

func SFatal(msg string, fields ...zap.Field) {
	globalLogger.Fatal(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	globalLogger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	globalLogger.Error(msg, fields...)
}

// Json renders v with sonic so that payloads appear as a single string field.
func Json(key string, v interface{}) zap.Field {
	b, err := sonic.Marshal(v)
	if err != nil {
		return zap.Reflect(key, v)
	}
	return zap.String(key, string(b))
}
