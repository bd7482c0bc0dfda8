package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap so components can carry a named child logger.
type Logger struct {
	*zap.Logger
	config *LoggerConfig
}

var (
	globalLogger *Logger
	once         sync.Once
)

// NewLogger builds the process logger on first use and returns it afterwards.
func NewLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		globalLogger = &Logger{Logger: build(cfg), config: cfg}
		globalLogger.Info("logger initialized", zap.String("level", cfg.Level), zap.String("format", cfg.Format))
	})
	return globalLogger
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: &LoggerConfig{Level: "info", Format: "json", OutputFile: "stdout"}}
}

func build(cfg *LoggerConfig) *zap.Logger {
	var zc zap.Config
	if cfg.Level == "debug" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	if err := zc.Level.UnmarshalText([]byte(cfg.Level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q, using info: %v\n", cfg.Level, err)
		zc.Level.SetLevel(zapcore.InfoLevel)
	}

	zc.OutputPaths = []string{cfg.OutputFile}
	zc.ErrorOutputPaths = []string{"stderr"}
	if !cfg.toStdStream() {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create log directory, using stdout: %v\n", err)
			zc.OutputPaths = []string{"stdout"}
		} else {
			zc.OutputPaths = []string{cfg.OutputFile, "stdout"}
			zc.ErrorOutputPaths = []string{cfg.OutputFile, "stderr"}
		}
	}

	zc.Encoding = "json"
	if cfg.Format == "console" || cfg.Format == "text" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := zc.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "falling back to default zap logger: %v\n", err)
		l, _ = zap.NewProduction()
	}
	return l
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}
