package blobstore

import (
	"context"

	"golang.org/x/time/rate"
)

// ThrottledStore wraps a Store and limits the IO throughput of blob reads and
// writes to a fixed number of bytes per second.
type ThrottledStore struct {
	Store
	limiter *rate.Limiter
}

// NewThrottledStore returns a Store that throttles IO on inner.
// A non-positive bytesPerSec disables throttling.
func NewThrottledStore(inner Store, bytesPerSec int) *ThrottledStore {
	s := &ThrottledStore{Store: inner}
	if bytesPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec)
	}
	return s
}

// Open opens a blob whose reads are throttled.
// The context is used for waiting on the limiter during subsequent reads.
func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	blob, err := s.Store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if s.limiter == nil {
		return blob, nil
	}
	return &throttledBlob{Blob: blob, ctx: ctx, limiter: s.limiter}, nil
}

// Put waits for the limiter to admit len(data) bytes, then writes the blob.
func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := acquire(ctx, s.limiter, len(data)); err != nil {
		return err
	}
	return s.Store.Put(ctx, name, data)
}

// acquire waits for n tokens in chunks no larger than the limiter burst,
// since WaitN rejects requests above the burst size.
func acquire(ctx context.Context, l *rate.Limiter, n int) error {
	if l == nil {
		return nil
	}
	burst := l.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := l.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// throttledBlob does not implement Mappable, so every read passes the limiter.
type throttledBlob struct {
	Blob
	ctx     context.Context
	limiter *rate.Limiter
}

func (b *throttledBlob) ReadAt(p []byte, off int64) (int, error) {
	if err := acquire(b.ctx, b.limiter, len(p)); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(p, off)
}
