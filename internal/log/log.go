package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
)

const (
	LevelTrace = slog.Level(-8)
	// LevelNone sits above every level a record is emitted at.
	LevelNone = slog.Level(100)
)

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "none", "":
		return LevelNone, nil
	default:
		return LevelNone, fmt.Errorf("unknown log level %q", s)
	}
}

// FileWriter appends to a log file and can reopen it in place after rotation.
type FileWriter struct {
	path string
	mu   sync.Mutex
	fh   *os.File
	sigs chan os.Signal
}

func OpenFile(path string) (*FileWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory for '%s': %w", path, err)
	}
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file '%s': %w", path, err)
	}
	return &FileWriter{path: path, fh: fh}, nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fh == nil {
		return 0, os.ErrClosed
	}
	return w.fh.Write(p)
}

func (w *FileWriter) Reopen() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fh != nil {
		w.fh.Close()
	}
	fh, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		w.fh = nil
		return fmt.Errorf("reopen log file '%s': %w", w.path, err)
	}
	w.fh = fh
	return nil
}

/*
 * reopen the log file on SIGHUP so it can be rotated underneath us
 * mv rush.log rush.bak && kill -HUP <pid>
 */
func (w *FileWriter) watchRotation() {
	w.sigs = make(chan os.Signal, 1)
	signal.Notify(w.sigs, syscall.SIGHUP)
	go func() {
		for range w.sigs {
			if err := w.Reopen(); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
		}
	}()
}

func (w *FileWriter) Close() error {
	if w.sigs != nil {
		signal.Stop(w.sigs)
		close(w.sigs)
		w.sigs = nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fh == nil {
		return nil
	}
	err := w.fh.Close()
	w.fh = nil
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a JSON slog logger at the given level. Records go to logFile when
// set, else to fallback; a file that cannot be opened falls back with a warning.
func New(level, logFile string, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = fallback
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		fw, err := OpenFile(logFile)
		if err != nil {
			fmt.Fprintf(fallback, "%v; falling back to stderr\n", err)
		} else {
			fw.watchRotation()
			out = fw
			closer = fw
		}
	}

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(out, loggerOptions)), closer, nil
}
