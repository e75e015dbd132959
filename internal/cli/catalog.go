package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seqwell/seqwell/internal/seq"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "List the cataloged sequences",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd)
		},
	}
	return cmd
}

// catalogReport is the JSON payload of the catalog command.
type catalogReport struct {
	Name        string `json:"name"`
	OEIS        string `json:"oeis,omitempty"`
	Description string `json:"description"`
	Traits      string `json:"traits,omitempty"`
}

func runCatalog(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	entries := seq.Default().Entries()

	if opts.Format == "json" {
		report := make([]catalogReport, len(entries))
		for i, e := range entries {
			report[i] = catalogReport{
				Name:        e.Name,
				OEIS:        e.OEIS,
				Description: e.Description,
				Traits:      e.Traits.String(),
			}
		}
		return formatter.Success(report)
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOEIS\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.OEIS, e.Description)
	}
	return w.Flush()
}
