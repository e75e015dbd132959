package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqwell/seqwell/internal/seq"
)

// NewDocCommand creates the doc command.
func NewDocCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "doc <name>",
		Short:         "Show the documentation of a cataloged sequence",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoc(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

// docReport is the JSON payload of the doc command.
type docReport struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	OEIS        string   `json:"oeis,omitempty"`
	Description string   `json:"description"`
	Traits      string   `json:"traits,omitempty"`
	Values      []string `json:"values"`
}

func runDoc(opts *RootOptions, name string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	entry, ok := seq.Default().Lookup(name)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown sequence %q, see 'seqwell catalog'", name))
	}
	values := seq.Values(entry.Seq, 10)

	if opts.Format == "json" {
		strValues := make([]string, len(values))
		for i, v := range values {
			strValues[i] = v.String()
		}
		return formatter.Success(docReport{
			Name:        entry.Name,
			Source:      entry.Seq.String(),
			OEIS:        entry.OEIS,
			Description: entry.Description,
			Traits:      entry.Traits.String(),
			Values:      strValues,
		})
	}

	fmt.Fprintf(formatter.Writer, "%s\n", entry.Name)
	fmt.Fprintf(formatter.Writer, "  definition: %s\n", entry.Description)
	if entry.OEIS != "" {
		fmt.Fprintf(formatter.Writer, "  oeis:       %s\n", entry.OEIS)
	}
	if traits := entry.Traits.String(); traits != "" {
		fmt.Fprintf(formatter.Writer, "  traits:     %s\n", traits)
	}
	fmt.Fprintf(formatter.Writer, "  values:     %s\n", formatValues(values))
	return nil
}
