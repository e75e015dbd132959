package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqwell/seqwell/internal/store"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "catalog", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSearchCommand_Text(t *testing.T) {
	stdout, stderr, err := execute(t, "search", "2", "3", "5", "7", "11")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	newGoldie(t).Assert(t, "search_primes", []byte(stdout))
}

func TestSearchCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "search", "2", "3", "5", "7", "11", "--format", "json")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "search_primes_json", []byte(stdout))
}

func TestSearchCommand_InvalidQuery(t *testing.T) {
	_, _, err := execute(t, "search", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSearchCommand_NoMatch(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("algorithms: [catalog]\n"), 0o644))

	_, _, err := execute(t, "search", "9", "8", "9", "8", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "no matching sequence")
}

func TestSearchCommand_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("algorithms: [bogus]\n"), 0o644))

	_, _, err := execute(t, "search", "1", "2", "3", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSearchCommand_RecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	_, _, err := execute(t, "search", "2", "3", "5", "7", "11", "--history", dbPath)
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	sessions, err := st.ReadSessions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "2 3 5 7 11", sessions[0].Query)
	assert.Equal(t, 5, sessions[0].Size)

	results, err := st.ReadResults(context.Background(), sessions[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "p", results[0].Source)
}

func TestHistoryCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	_, _, err := execute(t, "search", "2", "3", "5", "7", "11", "--history", dbPath)
	require.NoError(t, err)

	stdout, _, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 3 5 7 11")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	sessions, err := st.ReadSessions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	st.Close()

	stdout, _, err = execute(t, "history", sessions[0].ID, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "query: 2 3 5 7 11")
	assert.Contains(t, stdout, "p")
}

func TestHistoryCommand_NotConfigured(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no history database configured")
}

func TestValuesCommand(t *testing.T) {
	stdout, _, err := execute(t, "values", "p")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "values_p", []byte(stdout))
}

func TestValuesCommand_UnknownName(t *testing.T) {
	_, _, err := execute(t, "values", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValuesCommand_BadCount(t *testing.T) {
	_, _, err := execute(t, "values", "p", "-n", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDocCommand(t *testing.T) {
	stdout, _, err := execute(t, "doc", "square")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "doc_square", []byte(stdout))
}

func TestDocCommand_UnknownName(t *testing.T) {
	_, _, err := execute(t, "doc", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalogCommand_Text(t *testing.T) {
	stdout, _, err := execute(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "power_of_2")
	assert.Contains(t, stdout, "A000290")
}

func TestCatalogCommand_JSON(t *testing.T) {
	stdout, _, err := execute(t, "catalog", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   []catalogReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Data, 22)

	var names []string
	for _, e := range resp.Data {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "p")
	assert.Contains(t, names, "fib01")
}

func TestSearchCommand_TruncatedWarning(t *testing.T) {
	stdout, stderr, err := execute(t,
		"search", "2", "3", "5", "9", "17", "33",
		"--max-steps", "2", "--all")
	// With a two-step budget the queue cannot drain; the direct geometric
	// hit is still reported and the truncation lands on stderr.
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning")
	assert.True(t, strings.Contains(stdout, "query: 2 3 5 9 17 33"))
}
