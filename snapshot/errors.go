package snapshot

import "errors"

var (
	// ErrInvalidMagic is returned when the input does not start with the snapshot magic.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format version.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrChecksumMismatch is returned when the decoded payload does not match the header checksum.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")

	// ErrUnknownCodec is returned for codec names that are not built in.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")

	// ErrUnknownCompression is returned for unknown compression identifiers.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")

	// ErrCorrupt is returned when the header or payload is truncated or inconsistent.
	ErrCorrupt = errors.New("snapshot: corrupt data")
)
