package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/uname-n/pine"
	"github.com/uname-n/pine/distance"
)

type savedVector struct {
	ID       string `json:"id" yaml:"id"`
	Location string `json:"location" yaml:"location"`
}

type loadedVector struct {
	ID   string `json:"id" yaml:"id"`
	Data values `json:"data" yaml:"data"`
}

type existence struct {
	ID     string `json:"id" yaml:"id"`
	Exists bool   `json:"exists" yaml:"exists"`
}

func newSaveCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "save [--id ID] VALUE...",
		Short: "Save a vector",
		Long: `Save a vector, replacing any vector stored under the same id.

Values may be separate arguments or comma-separated. A random UUID is used
when --id is not given. Put negative values after "--".

Examples:
  pine save --id doc-1 0.5 0.3 0.7
  pine save 0.5,0.3,0.7
  pine save --id doc-2 -- -0.5 0.3 0.7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseFloats(args)
			if err != nil {
				return err
			}
			if id == "" {
				id = uuid.NewString()
			}
			return a.withStore(func(db *pine.Pine) error {
				if err := db.Save(pine.NewVector(id, data)); err != nil {
					return err
				}
				loc, _, err := db.Locate(id)
				if err != nil {
					return err
				}
				return a.render(cmd.OutOrStdout(), savedVector{ID: id, Location: loc}, func(w io.Writer) {
					fmt.Fprintln(w, id)
				})
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Vector id (default: random UUID)")

	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load ID",
		Short: "Print a stored vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(db *pine.Pine) error {
				v, found, err := db.Load(args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("%s: %w", args[0], ErrAbsent)
				}
				out := loadedVector{ID: v.ID(), Data: v.Data()}
				return a.render(cmd.OutOrStdout(), out, func(w io.Writer) {
					fmt.Fprintf(w, "%s %s\n", out.ID, formatFloats(out.Data))
				})
			})
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete stored vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.withStore(func(db *pine.Pine) error {
				for _, id := range args {
					if err := db.Delete(id); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newExistsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists ID",
		Short: "Report whether a vector is stored",
		Long:  "Report whether a vector is stored. Exits with status 1 when it is not.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(db *pine.Pine) error {
				ok, err := db.Exists(args[0])
				if err != nil {
					return err
				}
				err = a.render(cmd.OutOrStdout(), existence{ID: args[0], Exists: ok}, func(w io.Writer) {
					fmt.Fprintln(w, ok)
				})
				if err == nil && !ok {
					err = ErrAbsent
				}
				return err
			})
		},
	}
}

func newSizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Print the number of stored vectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(db *pine.Pine) error {
				n, err := db.Size()
				if err != nil {
					return err
				}
				return a.render(cmd.OutOrStdout(), map[string]int{"size": n}, func(w io.Writer) {
					fmt.Fprintln(w, n)
				})
			})
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(db *pine.Pine) error {
				s, err := db.Stats()
				if err != nil {
					return err
				}
				return a.render(cmd.OutOrStdout(), s, func(w io.Writer) {
					fmt.Fprintf(w, "clusters:       %d\n", s.Clusters)
					fmt.Fprintf(w, "empty clusters: %d\n", s.EmptyClusters)
					fmt.Fprintf(w, "members:        %d\n", s.Members)
					fmt.Fprintf(w, "index entries:  %d\n", s.IndexEntries)
					fmt.Fprintf(w, "disk bytes:     %d\n", s.DiskBytes)
				})
			})
		},
	}
}

func newClustersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "List clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(db *pine.Pine) error {
				clusters, err := db.Clusters()
				if err != nil {
					return err
				}
				if clusters == nil {
					clusters = []pine.ClusterInfo{}
				}
				return a.render(cmd.OutOrStdout(), clusters, func(w io.Writer) {
					for _, c := range clusters {
						fmt.Fprintf(w, "%s\trepresentative=%s\tmembers=%d\n", c.Name, c.Representative, c.Members)
					}
				})
			})
		},
	}
}

// newMeasureCmd builds a command that compares two comma-separated vectors.
func newMeasureCmd(a *app, use, short, key string, measure func(x, y []float32) float32) *cobra.Command {
	return &cobra.Command{
		Use:   use + " A B",
		Short: short,
		Long:  short + ". A and B are comma-separated values, e.g. 0.5,0.3,0.7.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseFloats(args[:1])
			if err != nil {
				return err
			}
			y, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			if len(x) != len(y) {
				return fmt.Errorf("dimension mismatch: %d != %d", len(x), len(y))
			}
			r := measure(x, y)
			return a.render(cmd.OutOrStdout(), map[string]float32{key: r}, func(w io.Writer) {
				fmt.Fprintln(w, formatFloats([]float32{r}))
			})
		},
	}
}

func newDistanceCmd(a *app) *cobra.Command {
	return newMeasureCmd(a, "distance", "Print the Euclidean distance of two vectors", "distance", distance.Euclidean)
}

func newSimilarityCmd(a *app) *cobra.Command {
	return newMeasureCmd(a, "similarity", "Print the cosine similarity of two vectors", "similarity", distance.CosineSimilarity)
}
