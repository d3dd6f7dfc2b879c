package record

import (
	"fmt"
	"hash/crc32"
	"math"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// checksum returns the CRC32-C of an encoded body.
func checksum(body []byte) uint32 {
	return crc32.Checksum(body, castagnoli)
}

// lengthField returns n as a uint32 header field.
func lengthField(what string, n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s %d", ErrTooLarge, what, n)
	}
	return uint32(n), nil
}
