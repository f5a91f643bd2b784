// Package logger holds the process-wide slog logger. Until Setup succeeds,
// records are discarded.
package logger

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config places the log file at <Root>/<Dir>/sumlist.log.
type Config struct {
	Root  string
	Dir   string // defaults to .sumlist/logs
	Debug bool
}

const (
	defaultDir = ".sumlist/logs"
	fileName   = "sumlist.log"
)

type sink struct {
	log  *slog.Logger
	file *os.File
	path string
}

var (
	mu      sync.RWMutex
	current = discard()
)

func discard() sink {
	return sink{log: slog.New(slog.DiscardHandler)}
}

// Setup opens the log file and installs a JSON logger writing to it. The
// returned func closes the file and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	path := filePath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		install(discard())
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		install(discard())
		return nil, err
	}

	l := slog.New(newHandler(f, cfg.Debug))
	install(sink{log: l, file: f, path: path})
	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	return func() error {
		mu.Lock()
		if current.file == f {
			current = discard()
		}
		mu.Unlock()
		return f.Close()
	}, nil
}

// install swaps the active sink, closing a file left open by an earlier Setup.
func install(s sink) {
	mu.Lock()
	prev := current
	current = s
	mu.Unlock()

	if prev.file != nil && prev.file != s.file {
		_ = prev.file.Close()
	}
}

func filePath(cfg Config) string {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	return filepath.Join(filepath.Clean(root), filepath.FromSlash(dir), fileName)
}

func newHandler(f *os.File, debug bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: utcTime,
	}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.NewJSONHandler(f, opts)
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.log
}

// Path is the active log file, or "" while discarding.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.path
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if current.file == nil {
		return errors.New("logger not initialized")
	}
	return nil
}
