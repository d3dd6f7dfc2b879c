package cli_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/uname-n/pine/internal/cli"
)

var _ = Describe("LoadConfig", func() {
	It("falls back to defaults", func() {
		cmd := cli.NewPineCmd()
		cfg, err := cli.LoadConfig(cmd)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(cli.NewDefaultConfig()))
	})

	It("layers flags over env over the config file", func() {
		root := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(root, "pine.toml"), []byte(
			"threshold = 0.7\ncompression = \"lz4\"\ncache_size = 16\nsync = true\n",
		), 0o644)).To(Succeed())

		Expect(os.Setenv("PINE_COMPRESSION", "zstd")).To(Succeed())
		DeferCleanup(os.Unsetenv, "PINE_COMPRESSION")
		Expect(os.Setenv("PINE_WRITE_LIMIT", "4096")).To(Succeed())
		DeferCleanup(os.Unsetenv, "PINE_WRITE_LIMIT")

		cmd := cli.NewPineCmd()
		Expect(cmd.PersistentFlags().Set("root", root)).To(Succeed())
		Expect(cmd.PersistentFlags().Set("threshold", "0.25")).To(Succeed())

		cfg, err := cli.LoadConfig(cmd)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Root).To(Equal(root))
		Expect(cfg.Threshold).To(Equal(0.25))
		Expect(cfg.Compression).To(Equal("zstd"))
		Expect(cfg.CacheSize).To(Equal(16))
		Expect(cfg.Sync).To(BeTrue())
		Expect(cfg.WriteLimit).To(Equal(int64(4096)))
	})

	It("reports malformed config files", func() {
		root := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(root, "pine.toml"), []byte("threshold = ["), 0o644)).To(Succeed())

		cmd := cli.NewPineCmd()
		Expect(cmd.PersistentFlags().Set("root", root)).To(Succeed())

		_, err := cli.LoadConfig(cmd)
		Expect(err).To(MatchError(ContainSubstring("reading config")))
	})
})
