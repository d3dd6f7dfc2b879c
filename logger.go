package pine

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the record shapes pine emits.
// Every record carries the store root; operation records carry the vector id.
type Logger struct {
	*slog.Logger
}

// NewLogger returns a Logger writing to handler.
// A nil handler logs text at Info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger returns a Logger writing JSON lines at level or above to w
// (stderr when w is nil).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NewTextLogger returns a Logger writing key=value lines at level or above to
// w (stderr when w is nil).
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(orStderr(w), &slog.HandlerOptions{Level: level}))
}

// NoopLogger returns a Logger that discards everything. It is the default.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

func orStderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// WithRoot adds the store root to every record.
func (l *Logger) WithRoot(root string) *Logger {
	return &Logger{Logger: l.With("root", root)}
}

// logOp reports the outcome of one operation: Error with the cause when err
// is set, Debug with attrs otherwise.
func (l *Logger) logOp(op, id string, err error, attrs ...any) {
	if err != nil {
		l.Error(op+" failed", "id", id, "error", err)
		return
	}
	l.Debug(op+" completed", append([]any{"id", id}, attrs...)...)
}

// LogSave logs a save that routed id to location.
func (l *Logger) LogSave(id, location string, err error) {
	l.logOp("save", id, err, "location", location)
}

// LogLoad logs a load.
func (l *Logger) LogLoad(id string, found bool, err error) {
	l.logOp("load", id, err, "found", found)
}

// LogDelete logs a delete.
func (l *Logger) LogDelete(id string, err error) {
	l.logOp("delete", id, err)
}

// LogClusterCreated logs a new cluster founded by representative.
func (l *Logger) LogClusterCreated(location, representative string) {
	l.Info("cluster created", "location", location, "representative", representative)
}
