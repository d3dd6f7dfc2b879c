// Package codec encodes the structured output of the pine command line.
//
// Encoders are looked up by their stable name so that the --output flag and
// the configuration file can select one by string. Every encoder terminates
// its output with a newline.
package codec

import (
	"io"
	"slices"
)

// Encoder writes values in one output format.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(w io.Writer, v any) error
	Name() string
}

var encoders = map[string]Encoder{
	"json":        JSON{},
	"pretty-json": JSON{Indent: "  "},
	"yaml":        YAML{},
}

// ByName returns a built-in encoder by its stable name.
func ByName(name string) (Encoder, bool) {
	e, ok := encoders[name]
	return e, ok
}

// Names lists the names accepted by ByName, sorted.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
