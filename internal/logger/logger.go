package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

type Config struct {
	Debug bool
	// Output defaults to os.Stderr. Ignored unless Debug is set.
	Output io.Writer
}

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewJSONHandler(io.Discard, nil))
)

// Setup installs the process logger. Without Debug everything is discarded so the
// console only carries the status line.
func Setup(cfg Config) func() {
	if !cfg.Debug {
		setDiscard()
		return setDiscard
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	h := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})

	l := slog.New(h)
	mu.Lock()
	global = l
	mu.Unlock()
	slog.SetDefault(l)

	l.Debug("logger.initialized")
	return setDiscard
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func setDiscard() {
	l := slog.New(slog.NewJSONHandler(io.Discard, nil))
	mu.Lock()
	global = l
	mu.Unlock()
	slog.SetDefault(l)
}
