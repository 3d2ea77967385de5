package capi

import (
	"log/slog"
	"os"
	"strconv"
)

// Config configures a Runtime.
type Config struct {
	// Logger receives contained failures and handle misuse. Nil selects a
	// JSON handler on stderr.
	Logger *slog.Logger
	// TraceStack attaches the goroutine stack to contained panic logs.
	TraceStack bool
}

// DefaultConfig logs JSON to stderr at info level, or debug when
// VISTOML_DEBUG is set.
func DefaultConfig() Config {
	return Config{Logger: defaultLogger()}
}

// ConfigFromEnv is DefaultConfig plus VISTOML_TRACE_STACK.
func ConfigFromEnv() Config {
	c := DefaultConfig()
	c.TraceStack = boolEnv("VISTOML_TRACE_STACK")
	return c
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(),
	}))
}

func slogLevel() slog.Level {
	if os.Getenv("VISTOML_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}
