package snapshot

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/symtab"
	"github.com/hupe1980/symtab/blobstore"
	"github.com/hupe1980/symtab/codec"
	"github.com/hupe1980/symtab/internal/conv"
	"github.com/hupe1980/symtab/internal/hash"
)

// lz4 cannot expand a block by more than this factor.
const maxLZ4Ratio = 255

// Encode serializes r into a snapshot.
func Encode(r *symtab.Resolver, opts ...Option) ([]byte, error) {
	return encode(r, buildOptions(opts))
}

func encode(r *symtab.Resolver, o options) ([]byte, error) {
	raw, err := encodeTable(r, o.codec)
	if err != nil {
		return nil, err
	}

	payload, used, err := compress(raw, o.compression, o.level)
	if err != nil {
		return nil, fmt.Errorf("snapshot: compress %s: %w", o.compression, err)
	}

	h := Header{
		Version:     Version,
		Compression: used,
		Codec:       o.codec,
		RawLen:      uint64(len(raw)),
		PayloadLen:  uint64(len(payload)),
		Checksum:    hash.CRC32C(raw),
	}
	if used != None {
		h.Level = uint8(o.level)
	}

	buf := make([]byte, 0, h.Size()+len(payload))
	if buf, err = appendHeader(buf, h); err != nil {
		return nil, err
	}
	return append(buf, payload...), nil
}

func encodeTable(r *symtab.Resolver, name string) ([]byte, error) {
	if name == codec.BinaryName {
		return r.MarshalBinary()
	}
	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return codec.MarshalTable(c, r.Strings())
}

// Inspect decodes and returns the header of a snapshot without decoding the table.
func Inspect(data []byte) (Header, error) {
	return parseHeader(data)
}

// Decode parses a snapshot and rebuilds the resolver it contains.
// Codec and compression are taken from the header.
func Decode(data []byte, opts ...Option) (*symtab.Resolver, error) {
	return decode(data, buildOptions(opts))
}

func decode(data []byte, o options) (*symtab.Resolver, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	payload := data[h.Size():]
	if uint64(len(payload)) != h.PayloadLen {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(payload), h.PayloadLen)
	}
	rawLen, err := conv.Uint64ToInt(h.RawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: raw length: %v", ErrCorrupt, err)
	}
	if h.Compression == LZ4 && rawLen/maxLZ4Ratio > len(payload) {
		return nil, fmt.Errorf("%w: implausible raw length %d", ErrCorrupt, rawLen)
	}

	raw, err := decompress(payload, h.Compression, rawLen)
	if err != nil {
		return nil, err
	}
	if err := hash.Verify(raw, h.Checksum); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChecksumMismatch, err)
	}

	return decodeTable(raw, h.Codec, o.resolver)
}

func decodeTable(raw []byte, name string, opts []symtab.Option) (*symtab.Resolver, error) {
	if name == codec.BinaryName {
		return symtab.DecodeBinary(raw, opts...)
	}
	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	values, err := codec.UnmarshalTable(c, raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return symtab.FromStrings(values, opts...)
}

// Write encodes r and writes the snapshot to w.
func Write(w io.Writer, r *symtab.Resolver, opts ...Option) error {
	data, err := Encode(r, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read reads a whole snapshot from rd and decodes it.
func Read(rd io.Reader, opts ...Option) (*symtab.Resolver, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts...)
}

// Save encodes r and stores it as the named blob.
func Save(ctx context.Context, store blobstore.Store, name string, r *symtab.Resolver, opts ...Option) error {
	o := buildOptions(opts)

	data, err := encode(r, o)
	if err == nil {
		err = store.Put(ctx, name, data)
	}
	o.logger.LogSnapshot(ctx, "save", name, len(data), err)
	return err
}

// Load reads the named blob and decodes it.
func Load(ctx context.Context, store blobstore.Store, name string, opts ...Option) (*symtab.Resolver, error) {
	o := buildOptions(opts)

	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		o.logger.LogSnapshot(ctx, "load", name, 0, err)
		return nil, err
	}

	r, err := decode(data, o)
	o.logger.LogSnapshot(ctx, "load", name, len(data), err)
	return r, err
}
