package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqwell/seqwell/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit    int
	Database string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [<session-id>]",
		Short: "Show recorded search sessions",
		Long: `Show recorded search sessions.

Without arguments the most recent sessions are listed; with a session ID
its recorded results are shown. Recording happens when the search command
runs with a history database configured.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runHistoryShow(opts, args[0], cmd)
			}
			return runHistoryList(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of sessions to list")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to history database (overrides config)")

	return cmd
}

func (o *HistoryOptions) openStore() (*store.Store, error) {
	path := o.Database
	if path == "" {
		cfg, err := o.Config()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		path = cfg.History
	}
	if path == "" {
		return nil, NewExitError(ExitCommandError, "no history database configured, set history in the config file or pass --db")
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	return st, nil
}

// sessionReport is the JSON payload of one history session.
type sessionReport struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Query     string          `json:"query"`
	Size      int             `json:"size"`
	Truncated bool            `json:"truncated"`
	Results   []historyResult `json:"results,omitempty"`
}

type historyResult struct {
	Source     string `json:"source"`
	Complexity int    `json:"complexity"`
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sessions, err := st.ReadSessions(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if opts.Format == "json" {
		report := make([]sessionReport, len(sessions))
		for i, s := range sessions {
			report[i] = sessionReport{
				ID:        s.ID,
				CreatedAt: s.CreatedAt,
				Query:     s.Query,
				Size:      s.Size,
				Truncated: s.Truncated,
			}
		}
		return formatter.Success(report)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded sessions")
		return nil
	}
	for _, s := range sessions {
		marker := ""
		if s.Truncated {
			marker = "  (truncated)"
		}
		fmt.Fprintf(formatter.Writer, "%s  %s  %s%s\n",
			s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.Query, marker)
	}
	return nil
}

func runHistoryShow(opts *HistoryOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := opts.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	session, err := st.ReadSession(ctx, id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	results, err := st.ReadResults(ctx, id)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session results", err)
	}

	if opts.Format == "json" {
		report := sessionReport{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			Query:     session.Query,
			Size:      session.Size,
			Truncated: session.Truncated,
		}
		for _, r := range results {
			report.Results = append(report.Results, historyResult{
				Source:     r.Source,
				Complexity: r.Complexity,
			})
		}
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "session: %s\n", session.ID)
	fmt.Fprintf(formatter.Writer, "  when:  %s\n", session.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(formatter.Writer, "  query: %s\n", session.Query)
	if session.Truncated {
		fmt.Fprintln(formatter.Writer, "  note:  search was truncated by a budget")
	}
	for _, r := range results {
		fmt.Fprintf(formatter.Writer, "%4d) %s  [complexity %d]\n", r.Position+1, r.Source, r.Complexity)
	}
	return nil
}
