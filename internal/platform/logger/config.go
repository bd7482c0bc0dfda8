package logger

import (
	"os"
	"strings"
)

// LoggerConfig is read from LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Format:     strings.ToLower(getEnv("LOG_FORMAT", "json")),
		OutputFile: getEnv("LOG_OUTPUT_FILE", "stdout"),
	}
}

func (c *LoggerConfig) toStdStream() bool {
	return c.OutputFile == "stdout" || c.OutputFile == "stderr"
}
