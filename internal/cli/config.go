package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the resolved configuration of one pine invocation.
type Config struct {
	Root        string  `mapstructure:"root"`
	Threshold   float64 `mapstructure:"threshold"`
	Compression string  `mapstructure:"compression"`
	Output      string  `mapstructure:"output"`
	Debug       bool    `mapstructure:"debug"`
	LogFormat   string  `mapstructure:"log_format"`
	CacheSize   int     `mapstructure:"cache_size"`
	Sync        bool    `mapstructure:"sync"`
	WriteLimit  int64   `mapstructure:"write_limit"`
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() Config {
	return Config{
		Root:        ".pine",
		Threshold:   0.9,
		Compression: "none",
		Output:      "text",
		LogFormat:   "pretty",
	}
}

// ConfigFileName is the config file looked up in the store root, without extension.
const ConfigFileName = "pine"

// Flag is the single source of truth for a global CLI flag.
type Flag struct {
	Name        string
	Shorthand   string
	ViperKey    string
	Description string
}

// Flag registry keys.
const (
	FlagRoot        = "root"
	FlagThreshold   = "threshold"
	FlagCompression = "compression"
	FlagOutput      = "output"
	FlagDebug       = "debug"
)

var globalFlags = map[string]Flag{
	FlagRoot:        {Name: "root", Shorthand: "r", ViperKey: "root", Description: "Store root directory"},
	FlagThreshold:   {Name: "threshold", Shorthand: "t", ViperKey: "threshold", Description: "Cosine similarity a vector must exceed to join a cluster"},
	FlagCompression: {Name: "compression", ViperKey: "compression", Description: "Record compression for new writes (none, lz4, zstd)"},
	FlagOutput:      {Name: "output", Shorthand: "o", ViperKey: "output", Description: "Output format (text, json, pretty-json, yaml)"},
	FlagDebug:       {Name: "debug", Shorthand: "d", ViperKey: "debug", Description: "Enable debug logging"},
}

// addGlobalFlags registers the persistent flags on the root command. Flag
// defaults come from NewDefaultConfig so help text and viper agree.
func addGlobalFlags(cmd *cobra.Command) {
	d := NewDefaultConfig()
	pf := cmd.PersistentFlags()

	f := globalFlags[FlagRoot]
	pf.StringP(f.Name, f.Shorthand, d.Root, f.Description)
	f = globalFlags[FlagThreshold]
	pf.Float64P(f.Name, f.Shorthand, d.Threshold, f.Description)
	f = globalFlags[FlagCompression]
	pf.String(f.Name, d.Compression, f.Description)
	f = globalFlags[FlagOutput]
	pf.StringP(f.Name, f.Shorthand, d.Output, f.Description)
	f = globalFlags[FlagDebug]
	pf.BoolP(f.Name, f.Shorthand, d.Debug, f.Description)
}

func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("root", d.Root)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("compression", d.Compression)
	v.SetDefault("output", d.Output)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("sync", d.Sync)
	v.SetDefault("write_limit", d.WriteLimit)
}

// InitViper creates and returns a configured *viper.Viper.
//
// Config precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (PINE_ROOT, PINE_THRESHOLD, PINE_CACHE_SIZE, etc.)
//  3. pine.toml in the store root
//  4. Defaults from NewDefaultConfig()
//
// The store root itself can only come from a flag, the environment or the default.
func InitViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	setViperDefaults(v)

	v.SetEnvPrefix("PINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, f := range globalFlags {
			if pf := cmd.Root().PersistentFlags().Lookup(f.Name); pf != nil {
				if err := v.BindPFlag(f.ViperKey, pf); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
				}
			}
		}
	}

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(v.GetString("root"))
	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// LoadConfig resolves the configuration for cmd.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	v, err := InitViper(cmd)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
