package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInjected is the error returned by a fault that does not carry its own.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailOnWrite    bool
	FailAfterBytes int64 // With FailOnWrite: bytes accepted by THIS FILE before writes fail.
	FailOnOpen     bool
	FailOnRead     bool
	FailOnSync     bool
	FailOnClose    bool
	FailOnRemove   bool
	FailOnRename   bool // matched against both paths
	FailOnMkdir    bool
	FailOnReadDir  bool
	FailOnStat     bool // also fails Info on entries returned by ReadDir
	Err            error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

type rule struct {
	pattern string
	fault   Fault
}

// FaultyFS is a FileSystem wrapper that can inject errors.
//
// Rules match by substring of the path; the most recently added matching
// rule wins.
type FaultyFS struct {
	FS FileSystem

	mu    sync.Mutex
	rules []rule
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{FS: fs}
}

// AddRule adds a fault injection rule for a specific path pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule{pattern: pattern, fault: fault})
}

// Reset removes all rules.
func (f *FaultyFS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
}

func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()
	var fault Fault
	for _, r := range f.rules {
		if strings.Contains(name, r.pattern) {
			fault = r.fault
		}
	}
	return fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault := f.match(name)
	if fault.FailOnOpen {
		return nil, &os.PathError{Op: "open", Path: name, Err: fault.err()}
	}
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, name: name, fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error {
	if fault := f.match(name); fault.FailOnRemove {
		return &os.PathError{Op: "remove", Path: name, Err: fault.err()}
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	for _, name := range []string{oldpath, newpath} {
		if fault := f.match(name); fault.FailOnRename {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fault.err()}
		}
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	if fault := f.match(name); fault.FailOnStat {
		return nil, &os.PathError{Op: "stat", Path: name, Err: fault.err()}
	}
	return f.FS.Stat(name)
}

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	if fault := f.match(path); fault.FailOnMkdir {
		return &os.PathError{Op: "mkdir", Path: path, Err: fault.err()}
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) {
	if fault := f.match(name); fault.FailOnReadDir {
		return nil, &os.PathError{Op: "readdirent", Path: name, Err: fault.err()}
	}
	entries, err := f.FS.ReadDir(name)
	for i, e := range entries {
		p := filepath.Join(name, e.Name())
		if fault := f.match(p); fault.FailOnStat {
			entries[i] = faultyDirEntry{DirEntry: e, path: p, fault: fault}
		}
	}
	return entries, err
}

type faultyDirEntry struct {
	os.DirEntry
	path  string
	fault Fault
}

func (e faultyDirEntry) Info() (os.FileInfo, error) {
	return nil, &os.PathError{Op: "lstat", Path: e.path, Err: e.fault.err()}
}

type faultyFile struct {
	File
	name    string
	fault   Fault
	written int64
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	if ff.fault.FailOnRead {
		return 0, &os.PathError{Op: "read", Path: ff.name, Err: ff.fault.err()}
	}
	return ff.File.Read(p)
}

func (ff *faultyFile) Write(p []byte) (n int, err error) {
	if ff.fault.FailOnWrite && ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
		return 0, &os.PathError{Op: "write", Path: ff.name, Err: ff.fault.err()}
	}
	n, err = ff.File.Write(p)
	if n > 0 {
		ff.written += int64(n)
	}
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return &os.PathError{Op: "sync", Path: ff.name, Err: ff.fault.err()}
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		_ = ff.File.Close()
		return &os.PathError{Op: "close", Path: ff.name, Err: ff.fault.err()}
	}
	return ff.File.Close()
}
