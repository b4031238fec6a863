package config

import (
	"log/slog"
	"os"
)

// SetLogLevel configures the default logger from the LOG_LEVEL environment
// variable ("debug", "info", "warn" or "error"). Unset means info.
func SetLogLevel() {
	level := slog.LevelInfo

	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if err := level.UnmarshalText([]byte(envLevel)); err != nil {
			slog.Error("Invalid log level", "level", envLevel)
			os.Exit(1)
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
