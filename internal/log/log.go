package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup sends the default slog logger to a rotating JSON log file. The
// interactive demo owns the terminal, so nothing may be written to it.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,    // Max size in MB
			MaxBackups: 0,     // Number of backups
			MaxAge:     30,    // Days
			Compress:   false, // Enable compression
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level(debug),
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// SetupConsole sends the default slog logger to w through a human readable
// handler. Used by the non-interactive commands.
func SetupConsole(w io.Writer, debug bool) {
	initOnce.Do(func() {
		slog.SetDefault(slog.New(NewConsoleHandler(w, debug)))
		initialized.Store(true)
	})
}

// NewConsoleHandler returns a charm log handler writing to w.
func NewConsoleHandler(w io.Writer, debug bool) slog.Handler {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: debug,
		TimeFormat:      time.Kitchen,
		Prefix:          "vscroll",
	})
	if debug {
		l.SetLevel(charmlog.DebugLevel)
	} else {
		l.SetLevel(charmlog.WarnLevel)
	}
	return l
}

func Initialized() bool {
	return initialized.Load()
}

func level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// RecoverPanic writes a panic report next to the working directory and runs
// cleanup. Deferred at the top of every goroutine the demo starts.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		timestamp := time.Now().Format("20060102-150405")
		filename := fmt.Sprintf("vscroll-panic-%s-%s.log", name, timestamp)

		file, err := os.Create(filename)
		if err == nil {
			defer file.Close()

			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
		}
		slog.Error("Recovered from panic", "name", name, "panic", r, "report", filename)

		if cleanup != nil {
			cleanup()
		}
	}
}
