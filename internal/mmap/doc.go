// Package mmap maps snapshot files read-only.
//
// The local blob store decodes snapshots straight from the page cache instead
// of copying them through a read buffer:
//
//	f, err := mmap.Open("symbols.symt", mmap.Sequential)
//	if err != nil { ... }
//	defer f.Close()
//
//	data, err := f.Bytes() // valid until Close
//
// On Unix the file is mapped with mmap(2) and hints go through madvise(2).
// Elsewhere the file is read into memory and hints are ignored.
//
// A File is safe for concurrent readers. Close is idempotent, but no goroutine
// may touch a view returned by Bytes after Close.
package mmap
