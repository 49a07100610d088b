package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mmcdole/flick/internal/config"
)

// apiKeyParam matches the TMDB key in request URLs. net/http errors carry
// the full URL, so anything logged passes through redact.
var apiKeyParam = regexp.MustCompile(`(api_key=)[^&\s"]+`)

// SetupLogger opens the JSON log file named by cfg, falling back to
// config.DefaultLogFile. The TUI owns the terminal, so logs never go to
// stderr. Level "off" discards everything.
func SetupLogger(cfg *config.LoggingConfig) (*slog.Logger, error) {
	if isOff(cfg.Level) {
		return NullLogger(), nil
	}

	logPath, err := resolvePath(cfg.File)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return newLogger(logFile, parseLogLevel(cfg.Level)), nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redact,
	}))
}

func resolvePath(path string) (string, error) {
	if path == "" {
		return config.DefaultLogFile(), nil
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}

// redact masks API keys in string and error attributes
func redact(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.Contains(s, "api_key=") {
			a.Value = slog.StringValue(apiKeyParam.ReplaceAllString(s, "${1}REDACTED"))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && err != nil && strings.Contains(err.Error(), "api_key=") {
			a.Value = slog.StringValue(apiKeyParam.ReplaceAllString(err.Error(), "${1}REDACTED"))
		}
	}
	return a
}

func isOff(level string) bool {
	switch strings.ToUpper(level) {
	case "OFF", "NONE":
		return true
	}
	return false
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
