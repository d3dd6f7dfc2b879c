// Package cli implements the pine command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/uname-n/pine"
	"github.com/uname-n/pine/codec"
)

// Exit codes returned by Execute.
const (
	ExitOK      = 0
	ExitAbsent  = 1
	ExitFailure = 2
)

// ErrAbsent is returned by commands whose subject does not exist. It maps to
// ExitAbsent and is not printed.
var ErrAbsent = errors.New("absent")

const pineLongDesc string = `Pine is a filesystem vector store that groups similar vectors into clusters.

Every vector is a file under <root>/vectors/<cluster>/ and every id has an
index entry under <root>/index/. Settings are read from flags, PINE_*
environment variables and <root>/pine.toml, in that order.

Examples:
  pine save --id doc-1 0.5 0.3 0.7
  pine load doc-1
  pine -o json stats
  pine similarity 0.5,0.3,0.7 0.2,0.4,0.1`

const pineShortDesc string = "Pine - filesystem vector store"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	cfg     Config
	logger  *slog.Logger
	encoder codec.Encoder // nil for text output
}

func (a *app) open() (*pine.Pine, error) {
	compression, err := pine.ParseCompression(a.cfg.Compression)
	if err != nil {
		return nil, err
	}
	return pine.New(a.cfg.Root, float32(a.cfg.Threshold),
		pine.WithLogger(&pine.Logger{Logger: a.logger}),
		pine.WithCompression(compression),
		pine.WithRepresentativeCache(a.cfg.CacheSize),
		pine.WithSync(a.cfg.Sync),
		pine.WithWriteLimit(a.cfg.WriteLimit),
	)
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(fn func(db *pine.Pine) error) error {
	db, err := a.open()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// NewPineCmd returns the root command.
func NewPineCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "pine",
		Short:         pineShortDesc,
		Long:          pineLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = NewLogger(
				WithDebug(cfg.Debug),
				WithFormat(cfg.LogFormat),
				WithWriter(cmd.ErrOrStderr()),
			)
			if cfg.Output != "text" {
				e, ok := codec.ByName(cfg.Output)
				if !ok {
					return fmt.Errorf("unknown output format %q", cfg.Output)
				}
				a.encoder = e
			}
			return nil
		},
	}

	addGlobalFlags(cmd)

	cmd.AddCommand(
		newSaveCmd(a),
		newLoadCmd(a),
		newDeleteCmd(a),
		newExistsCmd(a),
		newSizeCmd(a),
		newStatsCmd(a),
		newClustersCmd(a),
		newDistanceCmd(a),
		newSimilarityCmd(a),
	)

	return cmd
}

// Execute runs the command line with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewPineCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrAbsent):
		return ExitAbsent
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return ExitFailure
	}
}
