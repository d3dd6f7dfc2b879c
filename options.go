package pine

import (
	"log/slog"

	"github.com/uname-n/pine/internal/fs"
	"github.com/uname-n/pine/internal/record"
)

// FileSystem abstracts the filesystem operations Pine performs.
// Tests can substitute an implementation that injects faults.
type FileSystem = fs.FileSystem

// File is an open file returned by a FileSystem.
type File = fs.File

// Compression selects the body compression of newly written records.
// Records are self-describing, so stores may mix compressions.
type Compression = record.Compression

const (
	CompressionNone = record.CompressionNone
	CompressionLZ4  = record.CompressionLZ4
	CompressionZSTD = record.CompressionZSTD
)

// ParseCompression returns the compression named "none", "lz4" or "zstd".
func ParseCompression(name string) (Compression, error) {
	return record.ParseCompression(name)
}

type options struct {
	fs               fs.FileSystem
	compression      Compression
	cacheSize        int
	sync             bool
	writeLimit       int64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures New.
type Option func(*options)

// WithFileSystem replaces the local filesystem.
//
// If nil is passed, the local filesystem is used.
func WithFileSystem(fsys FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}

// WithCompression compresses the body of every record written from now on.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithRepresentativeCache keeps up to size decoded cluster representatives in
// memory, so routing a new vector does not re-read every representative.
//
// Representatives never change once written; an entry is replaced whenever a
// cluster is (re)created at its location and the whole cache is dropped on
// Close. Directories modified behind the store's back are not detected.
// size <= 0 disables the cache (the default).
func WithRepresentativeCache(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithSync fsyncs every member, representative and index file after writing.
func WithSync(sync bool) Option {
	return func(o *options) {
		o.sync = sync
	}
}

// WithWriteLimit throttles record writes to bytesPerSec.
// Zero (the default) means unlimited.
func WithWriteLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.writeLimit = bytesPerSec
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pine.BasicMetricsCollector{}
//	db, _ := pine.New("./data", 0.9, pine.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Saves: %d, Avg latency: %dns\n", stats.SaveCount, stats.SaveAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pine.NewJSONLogger(os.Stderr, slog.LevelInfo)
//	db, _ := pine.New("./data", 0.9, pine.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel logs text to stderr at level or above.
// It is shorthand for WithLogger(NewTextLogger(nil, level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(nil, level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		fs:               fs.Default,
		compression:      CompressionNone,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
