package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/search"
	"github.com/seqwell/seqwell/internal/seq"
	"github.com/seqwell/seqwell/internal/store"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	All           bool
	MaxCount      int
	MaxComplexity int
	MaxRank       int
	MaxSteps      int
	History       string
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <item> [<item>...]",
		Short: "Derive sequences matching a run of items",
		Long: `Derive symbolic sequences matching a run of items.

Items are exact integers, intervals (3..7), choices (2,4,8), bounds (5..,
..5) or wildcards (..). By default the search stops at the first match.

Example:
  seqwell search 2 3 5 7 11
  seqwell search 1 2 "3..5" .. --all
  seqwell search 0 2 8 24 64 --max-count 3`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "run the search to exhaustion")
	cmd.Flags().IntVar(&opts.MaxCount, "max-count", 0, "stop after this many results")
	cmd.Flags().IntVar(&opts.MaxComplexity, "max-complexity", 0, "stop at the first result at or below this complexity")
	cmd.Flags().IntVar(&opts.MaxRank, "max-rank", -1, "recursion rank budget (overrides config)")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", -1, "scheduler step budget (overrides config)")
	cmd.Flags().StringVar(&opts.History, "history", "", "path to history database (overrides config)")

	return cmd
}

// searchReport is the JSON payload of a search.
type searchReport struct {
	Query     string         `json:"query"`
	Size      int            `json:"size"`
	Truncated bool           `json:"truncated"`
	Results   []resultReport `json:"results"`
}

type resultReport struct {
	Source     string   `json:"source"`
	Complexity int      `json:"complexity"`
	Values     []string `json:"values"`
}

func runSearch(opts *SearchOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := opts.Config()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.MaxRank >= 0 {
		cfg.MaxRank = opts.MaxRank
	}
	if opts.MaxSteps >= 0 {
		cfg.MaxSteps = opts.MaxSteps
	}
	if opts.History != "" {
		cfg.History = opts.History
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	run, err := item.ParseItems(args...)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid query", err)
	}

	algorithms, err := cfg.BuildAlgorithms()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	m := search.NewManager(run.Len(),
		search.WithMaxRank(cfg.MaxRank),
		search.WithMaxSteps(cfg.MaxSteps),
		search.WithLogger(searchLogger(opts.Verbose)),
	)
	for _, a := range algorithms {
		m.AddAlgorithm(a)
	}

	handler := pickHandler(opts)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	started := time.Now()
	_, err = m.Search(ctx, run, handler)
	truncated := search.IsBudgetError(err)
	if err != nil && !truncated {
		return WrapExitError(ExitCommandError, "search aborted", err)
	}
	if truncated {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: %v, results may be incomplete\n", err)
	}
	formatter.VerboseLog("search took %s", time.Since(started).Round(time.Millisecond))

	results := handler.Collector().Results()
	if len(results) == 0 {
		if opts.Format == "json" {
			_ = formatter.Error("no_match", "no matching sequence found", nil)
		}
		return NewExitError(ExitFailure, "no matching sequence found")
	}

	if cfg.History != "" {
		if err := recordSession(ctx, cfg.History, run, results, truncated); err != nil {
			fmt.Fprintf(formatter.GetErrWriter(), "warning: could not record history: %v\n", err)
		}
	}

	return printResults(formatter, run, results, truncated)
}

func pickHandler(opts *SearchOptions) search.Handler {
	switch {
	case opts.MaxComplexity > 0:
		return search.StopBelowComplexity(opts.MaxComplexity)
	case opts.MaxCount > 0:
		return search.StopAtNum(opts.MaxCount)
	case opts.All:
		return search.StopAtLast()
	default:
		return search.StopAtFirst()
	}
}

func searchLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func printResults(f *OutputFormatter, run *item.Items, results []search.Result, truncated bool) error {
	if f.Format == "json" {
		report := searchReport{
			Query:     run.String(),
			Size:      run.Len(),
			Truncated: truncated,
			Results:   make([]resultReport, len(results)),
		}
		for i, r := range results {
			values := seq.Values(r.Seq, run.Len())
			strValues := make([]string, len(values))
			for j, v := range values {
				strValues[j] = v.String()
			}
			report.Results[i] = resultReport{
				Source:     r.Seq.String(),
				Complexity: r.Complexity,
				Values:     strValues,
			}
		}
		return f.Success(report)
	}

	fmt.Fprintf(f.Writer, "query: %s\n", run)
	for i, r := range results {
		values := seq.Values(r.Seq, run.Len())
		fmt.Fprintf(f.Writer, "%4d) %s = %s  [complexity %d]\n",
			i+1, r.Seq, formatValues(values), r.Complexity)
	}
	return nil
}

func recordSession(ctx context.Context, path string, run *item.Items, results []search.Result, truncated bool) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	session := store.Session{
		ID:        store.NewSessionID(),
		CreatedAt: time.Now(),
		Query:     run.String(),
		Size:      run.Len(),
		Truncated: truncated,
	}
	rows := make([]store.Result, len(results))
	for i, r := range results {
		rows[i] = store.Result{Position: i, Source: r.Seq.String(), Complexity: r.Complexity}
	}
	return st.WriteSession(ctx, session, rows)
}
