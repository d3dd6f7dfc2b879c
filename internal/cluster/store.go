package cluster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/uname-n/pine/distance"
	"github.com/uname-n/pine/internal/errkind"
	"github.com/uname-n/pine/internal/fs"
	"github.com/uname-n/pine/internal/record"
	"github.com/uname-n/pine/internal/resource"
)

// RepresentativeName is the file holding a cluster's representative.
const RepresentativeName = "metadata"

// Options configures a Store.
type Options struct {
	FileSystem fs.FileSystem
	// Threshold is the cosine similarity a record must strictly exceed to
	// join an existing cluster.
	Threshold float32
	// Sync fsyncs every written file.
	Sync bool
	// IO throttles writes. May be nil.
	IO *resource.Controller
	// CacheSize > 0 keeps up to CacheSize decoded representatives in memory.
	CacheSize int
}

// Store manages the cluster directories under one parent directory.
type Store struct {
	fsys      fs.FileSystem
	dir       string
	threshold float32
	sync      bool
	io        *resource.Controller
	reps      *lru.Cache[string, record.Record] // nil when caching is off
}

// Info describes one cluster.
type Info struct {
	Name           string
	Path           string
	Representative string
	Members        int
}

// New returns a Store over dir. The directory must already exist.
func New(dir string, opts Options) (*Store, error) {
	s := &Store{
		fsys:      opts.FileSystem,
		dir:       dir,
		threshold: opts.Threshold,
		sync:      opts.Sync,
		io:        opts.IO,
	}
	if s.fsys == nil {
		s.fsys = fs.Default
	}
	if opts.CacheSize > 0 {
		c, err := lru.New[string, record.Record](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("representative cache: %w", err)
		}
		s.reps = c
	}
	return s, nil
}

// Dir returns the parent directory of all clusters.
func (s *Store) Dir() string { return s.dir }

// Threshold returns the configured similarity threshold.
func (s *Store) Threshold() float32 { return s.threshold }

// IsLocation reports whether loc names a cluster directory of this store: a
// decimal name directly below a directory named like Dir. The root prefix is
// not compared, so entries written under an equivalent spelling of the root
// stay valid.
func (s *Store) IsLocation(loc string) bool {
	name := filepath.Base(loc)
	if loc == "" || name == "" || strings.Trim(name, "0123456789") != "" {
		return false
	}
	return filepath.Base(filepath.Dir(loc)) == filepath.Base(s.dir)
}

// Find returns the first cluster whose representative is similar enough to vec.
func (s *Store) Find(vec []float32) (string, bool, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return "", false, errkind.New(errkind.IO, "cluster.find", s.dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		loc := filepath.Join(s.dir, e.Name())
		rep, ok, err := s.representative(loc)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		if distance.CosineSimilarity(vec, rep.Data) > s.threshold {
			return loc, true, nil
		}
	}
	return "", false, nil
}

// Create makes a new cluster with enc as its permanent representative.
func (s *Store) Create(enc record.Encoded) (string, error) {
	n, err := s.countClusters()
	if err != nil {
		return "", err
	}
	loc := filepath.Join(s.dir, fmt.Sprintf("%03d", n))
	if err := s.fsys.MkdirAll(loc, 0o755); err != nil {
		return "", errkind.New(errkind.IO, "cluster.create", loc, err)
	}
	if err := s.write(filepath.Join(loc, RepresentativeName), enc.Bytes, "cluster.create"); err != nil {
		return "", err
	}
	if s.reps != nil {
		s.reps.Add(loc, enc.Record)
	}
	return loc, nil
}

// WriteMember writes enc into the cluster at loc, replacing any copy with the same id.
func (s *Store) WriteMember(loc string, enc record.Encoded) error {
	return s.write(filepath.Join(loc, enc.ID), enc.Bytes, "cluster.write_member")
}

// ReadMember reads the member id from the cluster at loc.
func (s *Store) ReadMember(loc, id string) (record.Record, error) {
	return s.read(filepath.Join(loc, id), "cluster.read_member")
}

// RemoveMember deletes the member id from the cluster at loc. It is a no-op
// when the member file does not exist.
func (s *Store) RemoveMember(loc, id string) error {
	p := filepath.Join(loc, id)
	if err := fs.RemoveIfExists(s.fsys, p); err != nil {
		return errkind.New(errkind.IO, "cluster.remove_member", p, err)
	}
	return nil
}

// CountMembers returns the number of member files across all clusters.
// Representatives are not counted.
func (s *Store) CountMembers() (int, error) {
	infos, err := s.list(false)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, info := range infos {
		total += info.Members
	}
	return total, nil
}

// Clusters describes every cluster in listing order.
func (s *Store) Clusters() ([]Info, error) {
	return s.list(true)
}

// Purge drops every cached representative.
func (s *Store) Purge() {
	if s.reps != nil {
		s.reps.Purge()
	}
}

// CachedRepresentatives returns the number of cached representatives.
func (s *Store) CachedRepresentatives() int {
	if s.reps == nil {
		return 0
	}
	return s.reps.Len()
}

func (s *Store) list(withRepresentative bool) ([]Info, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return nil, errkind.New(errkind.IO, "cluster.list", s.dir, err)
	}
	var infos []Info
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		loc := filepath.Join(s.dir, e.Name())
		members, err := s.fsys.ReadDir(loc)
		if err != nil {
			return nil, errkind.New(errkind.IO, "cluster.list", loc, err)
		}
		info := Info{Name: e.Name(), Path: loc}
		for _, m := range members {
			if m.Type().IsRegular() && m.Name() != RepresentativeName {
				info.Members++
			}
		}
		if withRepresentative {
			rep, ok, err := s.representative(loc)
			if err != nil {
				return nil, err
			}
			if ok {
				info.Representative = rep.ID
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (s *Store) countClusters() (int, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return 0, errkind.New(errkind.IO, "cluster.create", s.dir, err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			n++
		}
	}
	return n, nil
}

// representative loads the representative of the cluster at loc. ok is false
// when the cluster has none.
func (s *Store) representative(loc string) (record.Record, bool, error) {
	if s.reps != nil {
		if rep, ok := s.reps.Get(loc); ok {
			return rep, true, nil
		}
	}
	rep, err := s.read(filepath.Join(loc, RepresentativeName), "cluster.representative")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return record.Record{}, false, nil
		}
		return record.Record{}, false, err
	}
	if s.reps != nil {
		s.reps.Add(loc, rep)
	}
	return rep, true, nil
}

func (s *Store) write(p string, b []byte, op string) error {
	s.io.AcquireIO(len(b))
	if err := fs.WriteFile(s.fsys, p, b, 0o644, s.sync); err != nil {
		return errkind.New(errkind.IO, op, p, err)
	}
	return nil
}

func (s *Store) read(p, op string) (record.Record, error) {
	b, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return record.Record{}, errkind.New(errkind.IO, op, p, err)
	}
	rec, err := record.Decode(b)
	if err != nil {
		return record.Record{}, errkind.New(errkind.Encoding, op, p, err)
	}
	return rec, nil
}
