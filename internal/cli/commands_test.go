package cli_test

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/uname-n/pine/internal/cli"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(args ...string) result {
	var stdout, stderr bytes.Buffer
	code := cli.Execute(args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

var _ = Describe("pine commands", func() {
	var root string

	BeforeEach(func() {
		root = filepath.Join(GinkgoT().TempDir(), "store")
	})

	// pine runs a command against the per-test store.
	pine := func(args ...string) result {
		return run(append([]string{"--root", root}, args...)...)
	}

	Describe("save and load", func() {
		It("round trips a vector", func() {
			r := pine("save", "--id", "doc-1", "0.5", "0.3", "0.7")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
			Expect(r.stdout).To(Equal("doc-1\n"))

			r = pine("load", "doc-1")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
			Expect(r.stdout).To(Equal("doc-1 0.5,0.3,0.7\n"))
		})

		It("accepts comma-separated values and negative values after --", func() {
			Expect(pine("save", "--id", "a", "1,2,3").code).To(Equal(cli.ExitOK))
			Expect(pine("save", "--id", "b", "--", "-1", "2").code).To(Equal(cli.ExitOK))

			Expect(pine("load", "a").stdout).To(Equal("a 1,2,3\n"))
			Expect(pine("load", "b").stdout).To(Equal("b -1,2\n"))
		})

		It("generates a UUID when no id is given", func() {
			r := pine("save", "1", "2", "3")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)

			id := strings.TrimSpace(r.stdout)
			_, err := uuid.Parse(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(pine("exists", id).code).To(Equal(cli.ExitOK))
		})

		It("rejects values that are not numbers", func() {
			r := pine("save", "--id", "x", "1", "two")
			Expect(r.code).To(Equal(cli.ExitFailure))
			Expect(r.stderr).To(ContainSubstring(`invalid value "two"`))
		})

		It("rejects ids that are not file names", func() {
			r := pine("save", "--id", "../x", "1")
			Expect(r.code).To(Equal(cli.ExitFailure))
			Expect(r.stderr).To(ContainSubstring("path conversion failure"))
		})

		It("exits 1 when loading an unknown id", func() {
			r := pine("load", "missing")
			Expect(r.code).To(Equal(cli.ExitAbsent))
			Expect(r.stdout).To(BeEmpty())
		})

		It("reads records written with another compression", func() {
			Expect(pine("--compression", "zstd", "save", "--id", "z", "1", "2").code).To(Equal(cli.ExitOK))
			Expect(pine("--compression", "lz4", "load", "z").stdout).To(Equal("z 1,2\n"))
		})

		It("rejects unknown compressions", func() {
			r := pine("--compression", "brotli", "size")
			Expect(r.code).To(Equal(cli.ExitFailure))
		})
	})

	Describe("exists and delete", func() {
		It("tracks presence through the exit status", func() {
			r := pine("exists", "a")
			Expect(r.code).To(Equal(cli.ExitAbsent))
			Expect(r.stdout).To(Equal("false\n"))

			Expect(pine("save", "--id", "a", "1", "0").code).To(Equal(cli.ExitOK))
			r = pine("exists", "a")
			Expect(r.code).To(Equal(cli.ExitOK))
			Expect(r.stdout).To(Equal("true\n"))

			Expect(pine("delete", "a", "never-saved").code).To(Equal(cli.ExitOK))
			Expect(pine("exists", "a").code).To(Equal(cli.ExitAbsent))
		})
	})

	Describe("size, stats and clusters", func() {
		BeforeEach(func() {
			Expect(pine("save", "--id", "a", "0.5,0.3,0.7").code).To(Equal(cli.ExitOK))
			Expect(pine("save", "--id", "b", "0.2,0.4,0.1").code).To(Equal(cli.ExitOK))
			Expect(pine("save", "--id", "c", "0.55,0.35,0.75").code).To(Equal(cli.ExitOK))
		})

		It("counts members", func() {
			Expect(pine("size").stdout).To(Equal("3\n"))
		})

		It("lists clusters in text", func() {
			r := pine("clusters")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
			Expect(r.stdout).To(Equal(
				"000\trepresentative=a\tmembers=2\n" +
					"001\trepresentative=b\tmembers=1\n"))
		})

		It("encodes clusters as JSON", func() {
			r := pine("-o", "json", "clusters")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)

			var clusters []map[string]any
			Expect(json.Unmarshal([]byte(r.stdout), &clusters)).To(Succeed())
			Expect(clusters).To(HaveLen(2))
			Expect(clusters[0]["representative"]).To(Equal("a"))
			Expect(clusters[0]["members"]).To(BeNumerically("==", 2))
			Expect(clusters[1]["path"]).To(Equal(filepath.Join(root, "vectors", "001")))
		})

		It("encodes stats as YAML", func() {
			r := pine("-o", "yaml", "stats")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)

			var stats map[string]any
			Expect(yaml.Unmarshal([]byte(r.stdout), &stats)).To(Succeed())
			Expect(stats["clusters"]).To(Equal(2))
			Expect(stats["members"]).To(Equal(3))
			Expect(stats["empty_clusters"]).To(Equal(0))
		})

		It("prints stats as text", func() {
			r := pine("stats")
			Expect(r.stdout).To(ContainSubstring("clusters:       2"))
			Expect(r.stdout).To(ContainSubstring("members:        3"))
		})

		It("loads as pretty JSON", func() {
			r := pine("-o", "pretty-json", "load", "b")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
			Expect(r.stdout).To(ContainSubstring("\n  \"id\": \"b\""))
			Expect(r.stdout).To(MatchJSON(`{"id":"b","data":[0.2,0.4,0.1]}`))
		})
	})

	Describe("non-finite values", func() {
		BeforeEach(func() {
			r := pine("save", "--id", "n", "NaN,Inf,-Inf,1")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
		})

		It("loads as text", func() {
			r := pine("load", "n")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
			Expect(r.stdout).To(Equal("n NaN,+Inf,-Inf,1\n"))
		})

		It("loads as JSON with quoted non-finite values", func() {
			for _, format := range []string{"json", "pretty-json"} {
				r := pine("-o", format, "load", "n")
				Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
				Expect(r.stdout).To(MatchJSON(`{"id":"n","data":["NaN","+Inf","-Inf",1]}`))
			}
		})

		It("loads as YAML", func() {
			r := pine("-o", "yaml", "load", "n")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)

			var out struct {
				ID   string    `yaml:"id"`
				Data []float64 `yaml:"data"`
			}
			Expect(yaml.Unmarshal([]byte(r.stdout), &out)).To(Succeed())
			Expect(out.ID).To(Equal("n"))
			Expect(out.Data).To(HaveLen(4))
			Expect(math.IsNaN(out.Data[0])).To(BeTrue())
			Expect(math.IsInf(out.Data[1], 1)).To(BeTrue())
			Expect(math.IsInf(out.Data[2], -1)).To(BeTrue())
			Expect(out.Data[3]).To(Equal(1.0))
		})
	})

	Describe("distance and similarity", func() {
		parse := func(s string) float64 {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			Expect(err).NotTo(HaveOccurred())
			return f
		}

		It("computes the Euclidean distance", func() {
			r := pine("distance", "0.5,0.3,0.7", "0.2,0.4,0.1")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
			Expect(parse(r.stdout)).To(BeNumerically("~", 0.6782330, 1e-6))
		})

		It("computes the cosine similarity", func() {
			r := pine("similarity", "0.5,0.3,0.7", "0.2,0.4,0.1")
			Expect(r.code).To(Equal(cli.ExitOK), r.stderr)
			Expect(parse(r.stdout)).To(BeNumerically("~", 0.6946232, 1e-6))
		})

		It("is zero against the zero vector", func() {
			Expect(pine("similarity", "1,2", "0,0").stdout).To(Equal("0\n"))
		})

		It("rejects vectors of different sizes", func() {
			r := pine("distance", "1,2", "1,2,3")
			Expect(r.code).To(Equal(cli.ExitFailure))
			Expect(r.stderr).To(ContainSubstring("dimension mismatch"))
		})
	})

	Describe("configuration", func() {
		It("reads pine.toml from the store root", func() {
			Expect(os.MkdirAll(root, 0o755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(root, "pine.toml"), []byte("threshold = 1.0\noutput = \"json\"\n"), 0o644)).To(Succeed())

			// Identical vectors never exceed a threshold of 1.
			Expect(pine("save", "--id", "a", "1,0").code).To(Equal(cli.ExitOK))
			Expect(pine("save", "--id", "b", "1,0").code).To(Equal(cli.ExitOK))

			r := pine("size")
			Expect(r.stdout).To(MatchJSON(`{"size":2}`))

			r = pine("-o", "text", "clusters")
			Expect(strings.Count(r.stdout, "\n")).To(Equal(2))
		})

		It("lets flags override the config file", func() {
			Expect(os.MkdirAll(root, 0o755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(root, "pine.toml"), []byte("threshold = 1.0\n"), 0o644)).To(Succeed())

			Expect(pine("-t", "0.5", "save", "--id", "a", "1,0").code).To(Equal(cli.ExitOK))
			Expect(pine("-t", "0.5", "save", "--id", "b", "1,0").code).To(Equal(cli.ExitOK))

			Expect(strings.Count(pine("clusters").stdout, "\n")).To(Equal(1))
		})

		It("reads PINE_ environment variables", func() {
			Expect(os.Setenv("PINE_OUTPUT", "json")).To(Succeed())
			DeferCleanup(os.Unsetenv, "PINE_OUTPUT")

			Expect(pine("size").stdout).To(MatchJSON(`{"size":0}`))
		})

		It("rejects unknown output formats", func() {
			r := pine("-o", "xml", "size")
			Expect(r.code).To(Equal(cli.ExitFailure))
			Expect(r.stderr).To(ContainSubstring(`unknown output format "xml"`))
		})
	})
})

var _ = Describe("NewPineCmd", func() {
	It("registers every subcommand", func() {
		cmd := cli.NewPineCmd()
		var names []string
		for _, c := range cmd.Commands() {
			names = append(names, c.Name())
		}
		Expect(names).To(ContainElements(
			"save", "load", "delete", "exists", "size", "stats", "clusters", "distance", "similarity",
		))
	})

	It("rejects extra arguments", func() {
		cmd := cli.NewPineCmd()
		size, _, err := cmd.Find([]string{"size"})
		Expect(err).NotTo(HaveOccurred())
		Expect(size.Args(size, []string{"extra"})).To(HaveOccurred())
	})
})
