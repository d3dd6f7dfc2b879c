package codec

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAML writes values as YAML documents using gopkg.in/yaml.v3. Struct fields
// are named by their yaml tags.
type YAML struct{}

// Encode writes v as a single document.
func (YAML) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Name returns "yaml".
func (YAML) Name() string { return "yaml" }
