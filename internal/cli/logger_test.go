package cli_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/uname-n/pine/internal/cli"
)

var _ = Describe("NewLogger", func() {
	It("creates a pretty logger by default", func() {
		var buf bytes.Buffer
		l := cli.NewLogger(cli.WithWriter(&buf))
		l.Info("pretty output", "key", "value")

		Expect(buf.String()).To(ContainSubstring("pretty output"))
		Expect(buf.String()).To(ContainSubstring("value"))
	})

	It("creates a JSON logger", func() {
		var buf bytes.Buffer
		l := cli.NewLogger(cli.WithWriter(&buf), cli.WithFormat(cli.LogFormatJSON))
		l.Info("structured", "count", 42)

		var parsed map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &parsed)).To(Succeed())
		Expect(parsed["msg"]).To(Equal("structured"))
		Expect(parsed["count"]).To(BeNumerically("==", 42))
	})

	It("creates a text logger", func() {
		var buf bytes.Buffer
		l := cli.NewLogger(cli.WithWriter(&buf), cli.WithFormat(cli.LogFormatText))
		l.Info("plain")

		Expect(buf.String()).To(ContainSubstring("msg=plain"))
	})

	It("filters debug when not enabled", func() {
		for _, format := range []string{cli.LogFormatPretty, cli.LogFormatJSON, cli.LogFormatText} {
			var buf bytes.Buffer
			l := cli.NewLogger(cli.WithWriter(&buf), cli.WithFormat(format), cli.WithDebug(false))
			l.Debug("hidden")
			Expect(buf.String()).To(BeEmpty(), format)
		}
	})

	It("respects debug level", func() {
		var buf bytes.Buffer
		l := cli.NewLogger(cli.WithWriter(&buf), cli.WithDebug(true))
		l.Debug("debug msg")

		Expect(buf.String()).To(ContainSubstring("debug msg"))
	})
})
