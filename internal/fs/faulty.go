package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrInjected is returned by a fault that has no Err of its own.
var ErrInjected = errors.New("fs: injected fault")

// Fault selects the operations that fail for a matching file.
type Fault struct {
	Open bool
	// Writes fail once WriteBudget bytes have been written. Zero disables the
	// check; use a negative budget to fail the first write.
	WriteBudget int64
	Sync        bool
	Close       bool
	Rename      bool // matched against the rename target
	Err         error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

func (f Fault) failsWrite(written, n int64) bool {
	switch {
	case f.WriteBudget < 0:
		return true
	case f.WriteBudget == 0:
		return false
	default:
		return written+n > f.WriteBudget
	}
}

type rule struct {
	pattern string
	fault   Fault
}

// FaultyFS wraps a FileSystem and fails the operations its rules name.
// A rule applies to every path containing its pattern; the longest matching
// pattern wins.
type FaultyFS struct {
	FS FileSystem

	mu       sync.Mutex
	rules    []rule
	written  atomic.Int64
	injected atomic.Int64
}

// NewFaultyFS wraps fsys, or Default when fsys is nil.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{FS: fsys}
}

// AddRule installs fault for paths containing pattern, replacing an earlier
// rule with the same pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rules {
		if f.rules[i].pattern == pattern {
			f.rules[i].fault = fault
			return
		}
	}
	f.rules = append(f.rules, rule{pattern: pattern, fault: fault})
}

// Reset removes every rule.
func (f *FaultyFS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = nil
}

// Written returns the bytes successfully written through the wrapper.
func (f *FaultyFS) Written() int64 { return f.written.Load() }

// Injected returns how many operations failed on purpose.
func (f *FaultyFS) Injected() int64 { return f.injected.Load() }

func (f *FaultyFS) match(path string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	var best *rule
	for i := range f.rules {
		r := &f.rules[i]
		if strings.Contains(path, r.pattern) && (best == nil || len(r.pattern) > len(best.pattern)) {
			best = r
		}
	}
	if best == nil {
		return Fault{}
	}
	return best.fault
}

func (f *FaultyFS) inject(fault Fault) error {
	f.injected.Add(1)
	return fault.err()
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault := f.match(name)
	if fault.Open {
		return nil, f.inject(fault)
	}
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error { return f.FS.Remove(name) }

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if fault := f.match(newpath); fault.Rename {
		return f.inject(fault)
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error { return f.FS.MkdirAll(path, perm) }

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fault.failsWrite(ff.written, int64(len(p))) {
		return 0, ff.fs.inject(ff.fault)
	}
	n, err := ff.File.Write(p)
	ff.written += int64(n)
	ff.fs.written.Add(int64(n))
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fault.Sync {
		return ff.fs.inject(ff.fault)
	}
	return ff.File.Sync()
}

// Close always closes the underlying file, even when it reports a fault.
func (ff *faultyFile) Close() error {
	err := ff.File.Close()
	if ff.fault.Close {
		return ff.fs.inject(ff.fault)
	}
	return err
}
