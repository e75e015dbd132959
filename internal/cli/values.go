package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqwell/seqwell/internal/seq"
)

// ValuesOptions holds flags for the values command.
type ValuesOptions struct {
	*RootOptions
	Count int
}

// NewValuesCommand creates the values command.
func NewValuesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValuesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "values <name>",
		Short: "Print the leading values of a cataloged sequence",
		Long: `Print the leading values of a cataloged sequence.

Example:
  seqwell values p
  seqwell values fib01 -n 20`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 10, "number of values to print")

	return cmd
}

// valuesReport is the JSON payload of the values command.
type valuesReport struct {
	Name   string   `json:"name"`
	OEIS   string   `json:"oeis,omitempty"`
	Values []string `json:"values"`
}

func runValues(opts *ValuesOptions, name string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Count <= 0 {
		return NewExitError(ExitCommandError, "count must be positive")
	}

	entry, ok := seq.Default().Lookup(name)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown sequence %q, see 'seqwell catalog'", name))
	}
	values := seq.Values(entry.Seq, opts.Count)

	if opts.Format == "json" {
		strValues := make([]string, len(values))
		for i, v := range values {
			strValues[i] = v.String()
		}
		return formatter.Success(valuesReport{
			Name:   entry.Name,
			OEIS:   entry.OEIS,
			Values: strValues,
		})
	}

	fmt.Fprintf(formatter.Writer, "%s: %s\n", entry.Name, formatValues(values))
	return nil
}
