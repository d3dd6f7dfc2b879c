package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// render writes v with the configured encoder, or calls text for text output.
func (a *app) render(w io.Writer, v any, text func(w io.Writer)) error {
	if a.encoder == nil {
		text(w)
		return nil
	}
	if err := a.encoder.Encode(w, v); err != nil {
		return fmt.Errorf("encoding %s output: %w", a.encoder.Name(), err)
	}
	return nil
}

// parseFloats parses values given either as separate arguments or as
// comma-separated lists.
func parseFloats(args []string) ([]float32, error) {
	var out []float32
	for _, arg := range args {
		for _, field := range strings.Split(arg, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			f, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q: %w", field, err)
			}
			out = append(out, float32(f))
		}
	}
	return out, nil
}

func formatFloats(data []float32) string {
	parts := make([]string, len(data))
	for i, f := range data {
		parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

// values renders vector data in JSON output. JSON has no literal for NaN or
// the infinities, so those are written as the strings "NaN", "+Inf" and
// "-Inf", which parseFloats accepts back.
type values []float32

func (v values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	b := make([]byte, 0, 2+len(v)*8)
	b = append(b, '[')
	for i, f := range v {
		if i > 0 {
			b = append(b, ',')
		}
		if x := float64(f); math.IsNaN(x) || math.IsInf(x, 0) {
			b = strconv.AppendQuote(b, strconv.FormatFloat(x, 'g', -1, 32))
			continue
		}
		b = strconv.AppendFloat(b, float64(f), 'g', -1, 32)
	}
	return append(b, ']'), nil
}
