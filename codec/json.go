package codec

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// JSON writes one JSON document per value using github.com/goccy/go-json.
// Float32 values are printed with the shortest representation that
// round-trips at 32 bits.
type JSON struct {
	// Indent, if set, pretty-prints nested values.
	Indent string
}

// Encode writes v followed by a newline.
func (j JSON) Encode(w io.Writer, v any) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	return enc.Encode(v)
}

// Name returns "json", or "pretty-json" when indenting.
func (j JSON) Name() string {
	if j.Indent != "" {
		return "pretty-json"
	}
	return "json"
}
