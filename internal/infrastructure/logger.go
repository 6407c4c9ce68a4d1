package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jdsia/CSADPRG-MCO2/internal/config"
)

// consoleWriter receives "console" output. The interactive menu owns stdout.
var consoleWriter io.Writer = os.Stderr

// logState is the process logger and the log file it appends to, if any.
// InitializeLogger replaces both; the previous file is closed on swap.
var logState struct {
	mu     sync.Mutex
	logger *slog.Logger
	file   *os.File
}

// InitializeLogger builds the logger described by cfg, installs it as the
// process and slog default logger, and returns it. Calling it again replaces
// the logger and closes the file opened by the previous call. On error the
// current logger is left in place.
func InitializeLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	output, file, err := logOutput(cfg)
	if err != nil {
		return nil, err
	}

	logger := slog.New(&traceHandler{
		Handler: slog.NewJSONHandler(output, handlerOptions(cfg.Level)),
	})

	logState.mu.Lock()
	previous := logState.file
	logState.logger = logger
	logState.file = file
	logState.mu.Unlock()

	if previous != nil && previous != file {
		previous.Close()
	}
	slog.SetDefault(logger)
	return logger, nil
}

// GetLogger returns the logger installed by InitializeLogger, or slog's
// default before the first call.
func GetLogger() *slog.Logger {
	logState.mu.Lock()
	defer logState.mu.Unlock()
	if logState.logger == nil {
		return slog.Default()
	}
	return logState.logger
}

// NewJSONLogger builds a trace-aware JSON logger writing to w. It does not
// touch the process logger.
func NewJSONLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(&traceHandler{Handler: slog.NewJSONHandler(w, handlerOptions(level))})
}

// CloseLogFile closes the file opened by the last InitializeLogger call.
// Closing twice is a no-op.
func CloseLogFile() error {
	logState.mu.Lock()
	file := logState.file
	logState.file = nil
	logState.mu.Unlock()

	if file == nil {
		return nil
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close log file %s: %w", file.Name(), err)
	}
	return nil
}

// handlerOptions enables source locations only for debug logging.
func handlerOptions(level string) *slog.HandlerOptions {
	lvl := parseLogLevel(level)
	return &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}
}

func logOutput(cfg config.LoggingConfig) (io.Writer, *os.File, error) {
	switch strings.ToLower(cfg.Output) {
	case "file", "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, nil, err
		}
		if strings.EqualFold(cfg.Output, "both") {
			return io.MultiWriter(consoleWriter, file), file, nil
		}
		return file, file, nil
	default:
		return consoleWriter, nil, nil
	}
}

func openLogFile(filePath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory for %s: %w", filePath, err)
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", filePath, err)
	}
	return file, nil
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLogLevel maps a config level name to a slog.Level; unknown names are info.
func parseLogLevel(level string) slog.Level {
	if lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// traceHandler adds the run's trace_id from the context to every record
type traceHandler struct {
	slog.Handler
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if traceID := GetTraceID(ctx); traceID != "" {
		r.AddAttrs(slog.String("trace_id", traceID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name)}
}
