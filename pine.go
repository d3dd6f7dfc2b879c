package pine

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/uname-n/pine/distance"
	"github.com/uname-n/pine/internal/cluster"
	"github.com/uname-n/pine/internal/errkind"
	"github.com/uname-n/pine/internal/fs"
	"github.com/uname-n/pine/internal/index"
	"github.com/uname-n/pine/internal/record"
	"github.com/uname-n/pine/internal/resource"
)

const (
	vectorsDir = "vectors"
	indexDir   = "index"
)

// Pine is a filesystem-backed vector store that groups vectors into
// similarity clusters.
//
// Every call goes straight to the filesystem; a Pine holds no vector state
// of its own. It is not safe for concurrent writers.
type Pine struct {
	root        string
	threshold   float32
	fsys        fs.FileSystem
	compression Compression
	index       *index.Index
	clusters    *cluster.Store
	io          *resource.Controller
	logger      *Logger
	metrics     MetricsCollector
}

// New opens the store rooted at root, creating its vectors and index
// directories if needed.
//
// A vector joins the first cluster whose representative has a cosine
// similarity strictly greater than threshold.
func New(root string, threshold float32, optFns ...Option) (*Pine, error) {
	o := applyOptions(optFns)

	p := &Pine{
		root:        root,
		threshold:   threshold,
		fsys:        o.fs,
		compression: o.compression,
		io:          resource.NewController(resource.Config{IOLimitBytesPerSec: o.writeLimit}),
		logger:      o.logger.WithRoot(root),
		metrics:     o.metricsCollector,
	}

	for _, dir := range []string{p.vectorsPath(), p.indexPath()} {
		if err := p.fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, errkind.New(errkind.IO, "open", dir, err)
		}
	}

	clusters, err := cluster.New(p.vectorsPath(), cluster.Options{
		FileSystem: p.fsys,
		Threshold:  threshold,
		Sync:       o.sync,
		IO:         p.io,
		CacheSize:  o.cacheSize,
	})
	if err != nil {
		return nil, err
	}
	p.clusters = clusters
	p.index = index.New(p.indexPath(), index.Options{
		FileSystem:    p.fsys,
		Sync:          o.sync,
		ValidLocation: clusters.IsLocation,
	})

	p.logger.Debug("store opened", "threshold", threshold, "compression", p.compression)
	return p, nil
}

// Root returns the directory the store was opened on.
func (p *Pine) Root() string { return p.root }

// Threshold returns the similarity threshold.
func (p *Pine) Threshold() float32 { return p.threshold }

func (p *Pine) vectorsPath() string { return filepath.Join(p.root, vectorsDir) }
func (p *Pine) indexPath() string   { return filepath.Join(p.root, indexDir) }

// Save stores v, replacing any previously stored vector with the same id.
//
// The vector joins the first cluster whose representative is similar enough,
// or becomes the representative of a new cluster. Save is not atomic: if it
// fails part way, the store may hold a new empty cluster, lose the prior
// copy of v, or hold a member file with no index entry.
func (p *Pine) Save(v Vector) (err error) {
	start := time.Now()
	var loc string
	defer func() {
		p.metrics.RecordSave(time.Since(start), err)
		p.logger.LogSave(v.id, loc, err)
	}()

	if err = validateID("save", v.id); err != nil {
		return err
	}

	enc, err := record.NewEncoded(record.Record{ID: v.id, Data: v.data}, p.compression)
	if err != nil {
		return errkind.New(errkind.Encoding, "save", v.id, err)
	}

	var found bool
	loc, found, err = p.clusters.Find(v.data)
	if err != nil {
		return err
	}
	if !found {
		if loc, err = p.clusters.Create(enc); err != nil {
			return err
		}
		p.metrics.RecordClusterCreated()
		p.logger.LogClusterCreated(loc, v.id)
	}

	// The prior copy may live in another cluster. An entry that names no
	// cluster has no copy to remove and is overwritten below.
	if err = p.remove(v.id); err != nil && !errors.Is(err, index.ErrBadLocation) {
		return err
	}
	if err = p.clusters.WriteMember(loc, enc); err != nil {
		return err
	}
	return p.index.Set(v.id, loc)
}

// Load returns the vector stored under id. found is false if id is unknown.
func (p *Pine) Load(id string) (v Vector, found bool, err error) {
	start := time.Now()
	defer func() {
		p.metrics.RecordLoad(time.Since(start), found, err)
		p.logger.LogLoad(id, found, err)
	}()

	if err = validateID("load", id); err != nil {
		return Vector{}, false, err
	}
	loc, ok, err := p.index.Get(id)
	if err != nil || !ok {
		return Vector{}, false, err
	}
	rec, err := p.clusters.ReadMember(loc, id)
	if err != nil {
		return Vector{}, false, err
	}
	return Vector{id: rec.ID, data: rec.Data}, true, nil
}

// Delete removes the vector stored under id. Deleting an unknown id is a
// no-op. Clusters are never removed, even when they become empty.
func (p *Pine) Delete(id string) (err error) {
	start := time.Now()
	defer func() {
		p.metrics.RecordDelete(time.Since(start), err)
		p.logger.LogDelete(id, err)
	}()

	if err = validateID("delete", id); err != nil {
		return err
	}
	return p.remove(id)
}

// remove deletes the member file and index entry of id, if any.
func (p *Pine) remove(id string) error {
	loc, ok, err := p.index.Get(id)
	if err != nil || !ok {
		return err
	}
	if err := p.clusters.RemoveMember(loc, id); err != nil {
		return err
	}
	return p.index.Remove(id)
}

// Exists reports whether the index holds an entry for id.
func (p *Pine) Exists(id string) (bool, error) {
	if err := validateID("exists", id); err != nil {
		return false, err
	}
	_, ok, err := p.index.Get(id)
	return ok, err
}

// Locate returns the cluster directory holding id, as recorded in the index.
func (p *Pine) Locate(id string) (string, bool, error) {
	if err := validateID("locate", id); err != nil {
		return "", false, err
	}
	return p.index.Get(id)
}

// Size returns the number of stored vectors. Representatives are not counted.
func (p *Pine) Size() (int, error) {
	return p.clusters.CountMembers()
}

// Distance returns the Euclidean distance between a and b.
func (p *Pine) Distance(a, b Vector) float32 {
	return distance.Euclidean(a.data, b.data)
}

// CosineSimilarity returns the cosine similarity of a and b, or 0 when either
// has zero magnitude.
func (p *Pine) CosineSimilarity(a, b Vector) float32 {
	return distance.CosineSimilarity(a.data, b.data)
}

// validateID rejects ids that cannot be used as a single file name.
func validateID(op, id string) error {
	switch {
	case id == "", id == ".", id == "..",
		id == cluster.RepresentativeName,
		strings.ContainsAny(id, "/\\\x00"),
		!utf8.ValidString(id):
		return errkind.New(errkind.PathConversion, op, id, ErrInvalidID)
	}
	return nil
}
