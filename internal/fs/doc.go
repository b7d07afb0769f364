// Package fs writes snapshot files atomically on top of a small filesystem
// interface, so failed writes can be reproduced in tests.
//
// [WriteFile] stages data in a temporary file, syncs it and renames it over
// the destination. [LocalFS] is the os-backed implementation and [FaultyFS]
// injects write, sync, close or rename failures by file name:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".symt", fs.Fault{Sync: true})
//	err := fs.WriteFile(ffs, "out/table.symt", data) // ErrInjected
//
// Operations take no context.Context: local file operations are not
// interruptible at the syscall level.
package fs
