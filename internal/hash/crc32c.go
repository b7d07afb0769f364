package hash

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// CRC32CBase64 returns the checksum as S3 transmits it: the big-endian
// bytes in standard base64.
func CRC32CBase64(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], CRC32C(data))
	return base64.StdEncoding.EncodeToString(b[:])
}

// MismatchError reports a payload whose checksum differs from the recorded one.
type MismatchError struct {
	Want, Got uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("crc32c: expected %08x, got %08x", e.Want, e.Got)
}

// Verify returns a *MismatchError if data does not hash to want.
func Verify(data []byte, want uint32) error {
	if got := CRC32C(data); got != want {
		return &MismatchError{Want: want, Got: got}
	}
	return nil
}
