// Package record implements the on-disk encoding of a vector record.
//
// A record is an id plus an ordered sequence of float32 values. Encoded
// records are self-describing: a fixed header names the format version, the
// body compression and a CRC32C checksum, so decoding never needs the options
// the writer used.
//
// Layout (little-endian):
//
//	Header (16 bytes)
//	  Magic        uint32  "PINE"
//	  Version      uint16
//	  Compression  uint8   0 none, 1 lz4, 2 zstd
//	  Reserved     uint8
//	  Checksum     uint32  CRC32C of Body
//	  BodyLength   uint32
//	Body
//	  Payload, or a compressed block wrapping it:
//	  UncompressedSize uint32 | CompressedSize uint32 (0 = stored) | Data
//	Payload
//	  IDLength uint32 | ID | Dim uint32 | Dim x float32 bits
//
// Floats are stored as their IEEE-754 bit patterns, so every value
// (including NaN payloads and negative zero) round-trips exactly.
package record
