package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	magic         = 0x454E4950 // "PINE"
	formatVersion = 1
	headerSize    = 16
)

var (
	// ErrCorrupt is returned when a record fails validation.
	ErrCorrupt = errors.New("corrupt record")

	// ErrIncompatibleFormat is returned for an unknown magic or version.
	ErrIncompatibleFormat = errors.New("incompatible record format")

	// ErrTooLarge is returned when a length does not fit a header field.
	ErrTooLarge = errors.New("record too large")
)

// Record is a decoded vector record.
type Record struct {
	ID   string
	Data []float32
}

// Encoded is a record together with its serialized form, so callers that
// write the same record more than once encode it once.
type Encoded struct {
	Record
	Bytes []byte
}

// NewEncoded encodes r with the given body compression.
func NewEncoded(r Record, c Compression) (Encoded, error) {
	b, err := Encode(r, c)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Record: r, Bytes: b}, nil
}

// Encode serializes r.
func Encode(r Record, c Compression) ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unsupported compression: %v", c)
	}

	idLen, err := lengthField("id length", len(r.ID))
	if err != nil {
		return nil, err
	}
	dim, err := lengthField("dimension", len(r.Data))
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, 8+len(r.ID)+4*len(r.Data))
	payload = binary.LittleEndian.AppendUint32(payload, idLen)
	payload = append(payload, r.ID...)
	payload = binary.LittleEndian.AppendUint32(payload, dim)
	for _, v := range r.Data {
		payload = binary.LittleEndian.AppendUint32(payload, math.Float32bits(v))
	}

	body, err := compressBlock(payload, c)
	if err != nil {
		return nil, fmt.Errorf("compress %v: %w", c, err)
	}
	bodyLen, err := lengthField("body length", len(body))
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize, headerSize+len(body))
	binary.LittleEndian.PutUint32(out[0:4], magic)
	binary.LittleEndian.PutUint16(out[4:6], formatVersion)
	out[6] = byte(c)
	out[7] = 0
	binary.LittleEndian.PutUint32(out[8:12], checksum(body))
	binary.LittleEndian.PutUint32(out[12:16], bodyLen)
	return append(out, body...), nil
}

// Decode parses an encoded record.
func Decode(b []byte) (Record, error) {
	if len(b) < headerSize {
		return Record{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(b))
	}
	if m := binary.LittleEndian.Uint32(b[0:4]); m != magic {
		return Record{}, fmt.Errorf("%w: invalid magic: %x", ErrIncompatibleFormat, m)
	}
	if v := binary.LittleEndian.Uint16(b[4:6]); v != formatVersion {
		return Record{}, fmt.Errorf("%w: unsupported version: %d", ErrIncompatibleFormat, v)
	}
	c := Compression(b[6])
	if !c.Valid() {
		return Record{}, fmt.Errorf("%w: unknown compression: %d", ErrCorrupt, b[6])
	}
	sum := binary.LittleEndian.Uint32(b[8:12])
	bodyLen := binary.LittleEndian.Uint32(b[12:16])

	body := b[headerSize:]
	if uint64(len(body)) != uint64(bodyLen) {
		return Record{}, fmt.Errorf("%w: body length %d, header says %d", ErrCorrupt, len(body), bodyLen)
	}
	if checksum(body) != sum {
		return Record{}, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	payload, err := decompressBlock(body, c)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return decodePayload(payload)
}

func decodePayload(p []byte) (Record, error) {
	pb := payloadReader{buf: p}

	idLen := pb.readUint32()
	id := pb.readBytes(uint64(idLen))
	dim := pb.readUint32()
	raw := pb.readBytes(uint64(dim) * 4)
	if pb.err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrCorrupt, pb.err)
	}
	if pb.pos != len(p) {
		return Record{}, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(p)-pb.pos)
	}

	data := make([]float32, dim)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return Record{ID: string(id), Data: data}, nil
}

type payloadReader struct {
	buf []byte
	pos int
	err error
}

func (p *payloadReader) readUint32() uint32 {
	if p.err != nil {
		return 0
	}
	if p.pos+4 > len(p.buf) {
		p.err = errUnexpectedEnd
		return 0
	}
	v := binary.LittleEndian.Uint32(p.buf[p.pos:])
	p.pos += 4
	return v
}

func (p *payloadReader) readBytes(n uint64) []byte {
	if p.err != nil {
		return nil
	}
	if uint64(len(p.buf)-p.pos) < n {
		p.err = errUnexpectedEnd
		return nil
	}
	b := p.buf[p.pos : p.pos+int(n)]
	p.pos += int(n)
	return b
}

var errUnexpectedEnd = errors.New("unexpected end of payload")
