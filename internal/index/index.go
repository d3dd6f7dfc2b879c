// Package index maps vector ids to the cluster directory holding them.
//
// Each entry is one file, <dir>/<id>, whose content is the cluster location
// as UTF-8 text. Entries are replaced by renaming a temporary file from the
// parent of dir over them, so an entry is never observed half written.
// Nothing is cached: every call reads or writes the entry.
package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/uname-n/pine/internal/errkind"
	"github.com/uname-n/pine/internal/fs"
)

// ErrBadLocation is returned for an entry whose content is not a cluster location.
var ErrBadLocation = errors.New("not a cluster location")

// Options configures an Index.
type Options struct {
	FileSystem fs.FileSystem
	// Sync fsyncs every entry before it is renamed into place.
	Sync bool
	// ValidLocation reports whether a location names a cluster. Nil accepts
	// any non-empty location.
	ValidLocation func(string) bool
}

// Index is the persisted id -> cluster location mapping.
type Index struct {
	fsys  fs.FileSystem
	dir   string
	sync  bool
	valid func(string) bool
}

// New returns an Index over dir. The directory must already exist.
func New(dir string, opts Options) *Index {
	ix := &Index{
		fsys:  opts.FileSystem,
		dir:   dir,
		sync:  opts.Sync,
		valid: opts.ValidLocation,
	}
	if ix.fsys == nil {
		ix.fsys = fs.Default
	}
	if ix.valid == nil {
		ix.valid = func(string) bool { return true }
	}
	return ix
}

// Dir returns the directory holding the entries.
func (ix *Index) Dir() string { return ix.dir }

func (ix *Index) path(id string) string {
	return filepath.Join(ix.dir, id)
}

func (ix *Index) checkLocation(op, p, location string) error {
	if !utf8.ValidString(location) {
		return errkind.New(errkind.PathConversion, op, p, nil)
	}
	if location == "" || !ix.valid(location) {
		return errkind.New(errkind.PathConversion, op, p, fmt.Errorf("%w: %q", ErrBadLocation, location))
	}
	return nil
}

// Get returns the cluster location recorded for id.
func (ix *Index) Get(id string) (string, bool, error) {
	p := ix.path(id)
	b, err := fs.ReadFile(ix.fsys, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errkind.New(errkind.IO, "index.get", p, err)
	}
	if !utf8.Valid(b) {
		return "", false, errkind.New(errkind.TextEncoding, "index.get", p, nil)
	}
	location := string(b)
	if err := ix.checkLocation("index.get", p, location); err != nil {
		return "", false, err
	}
	return location, true, nil
}

// Set records location for id, replacing any previous entry.
func (ix *Index) Set(id, location string) error {
	p := ix.path(id)
	if err := ix.checkLocation("index.set", p, location); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(ix.dir), ".index-"+uuid.NewString()+".tmp")
	if err := fs.ReplaceFile(ix.fsys, p, tmp, []byte(location), 0o644, ix.sync); err != nil {
		return errkind.New(errkind.IO, "index.set", p, err)
	}
	return nil
}

// Remove deletes the entry for id. It is a no-op when there is none.
func (ix *Index) Remove(id string) error {
	p := ix.path(id)
	if err := fs.RemoveIfExists(ix.fsys, p); err != nil {
		return errkind.New(errkind.IO, "index.remove", p, err)
	}
	return nil
}
