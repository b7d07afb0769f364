//go:build !unix

package mmap

import (
	"io"
	"os"
)

// Without mmap the file is read into the heap; release is a no-op.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, func([]byte) error { return nil }, nil
}

func osAdvise([]byte, Advice) error { return nil }
