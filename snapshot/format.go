package snapshot

import (
	"encoding/binary"
	"fmt"
)

const (
	// Magic identifies a snapshot file.
	Magic = "SYMT"
	// Version is the current format version.
	Version uint16 = 1

	// fixed header bytes before the codec name: magic, version, compression, level, name length
	headerPrefixSize = 4 + 2 + 1 + 1 + 1
	// fixed header bytes after the codec name: raw length, payload length, checksum
	headerSuffixSize = 8 + 8 + 4

	maxCodecNameLen = 255
)

// Header describes a snapshot payload.
type Header struct {
	Version     uint16
	Compression Compression
	Level       uint8
	Codec       string
	RawLen      uint64
	PayloadLen  uint64
	Checksum    uint32
}

// Size returns the encoded header size in bytes.
func (h Header) Size() int {
	return headerPrefixSize + len(h.Codec) + headerSuffixSize
}

// appendHeader appends the binary header to buf.
func appendHeader(buf []byte, h Header) ([]byte, error) {
	if len(h.Codec) > maxCodecNameLen {
		return nil, fmt.Errorf("%w: codec name too long", ErrUnknownCodec)
	}
	buf = append(buf, Magic...)
	buf = binary.LittleEndian.AppendUint16(buf, h.Version)
	buf = append(buf, byte(h.Compression), h.Level, byte(len(h.Codec)))
	buf = append(buf, h.Codec...)
	buf = binary.LittleEndian.AppendUint64(buf, h.RawLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.PayloadLen)
	buf = binary.LittleEndian.AppendUint32(buf, h.Checksum)
	return buf, nil
}

// parseHeader decodes the header at the start of data.
func parseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return h, ErrInvalidMagic
	}
	if len(data) < headerPrefixSize {
		return h, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}

	h.Version = binary.LittleEndian.Uint16(data[4:])
	if h.Version == 0 || h.Version > Version {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	h.Compression = Compression(data[6])
	h.Level = data[7]
	nameLen := int(data[8])

	rest := data[headerPrefixSize:]
	if len(rest) < nameLen+headerSuffixSize {
		return h, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h.Codec = string(rest[:nameLen])
	rest = rest[nameLen:]
	h.RawLen = binary.LittleEndian.Uint64(rest)
	h.PayloadLen = binary.LittleEndian.Uint64(rest[8:])
	h.Checksum = binary.LittleEndian.Uint32(rest[16:])
	return h, nil
}
