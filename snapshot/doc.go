// Package snapshot persists symbol tables as self-describing, checksummed
// files.
//
// A snapshot is a small fixed header followed by the encoded table:
//
//	magic "SYMT"          4 bytes
//	version               u16
//	compression           u8   (None, LZ4, Zstd)
//	level                 u8
//	codec name            u8 length + bytes ("binary", "json", "go-json", "jsoniter")
//	raw length            u64  (encoded table before compression)
//	payload length        u64  (bytes that follow the header)
//	checksum              u32  (CRC32C of the raw encoded table)
//	payload
//
// All integers are little-endian. Readers pick the codec and decompressor
// from the header, so snapshots written with any option combination can be
// read back without configuration.
//
// # Usage
//
//	err := snapshot.Save(ctx, store, "idents.symt", resolver,
//	    snapshot.WithCompression(snapshot.Zstd),
//	)
//
//	r, err := snapshot.Load(ctx, store, "idents.symt")
package snapshot
