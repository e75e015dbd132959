package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_WriteAndReadSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	session := Session{
		ID:        NewSessionID(),
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Query:     "2 3 5 7 11",
		Size:      5,
	}
	results := []Result{
		{Position: 0, Source: "p", Complexity: 1},
		{Position: 1, Source: "(p + 0)", Complexity: 3},
	}
	require.NoError(t, s.WriteSession(ctx, session, results))

	got, err := s.ReadSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Query, got.Query)
	assert.Equal(t, 5, got.Size)
	assert.False(t, got.Truncated)
	assert.True(t, got.CreatedAt.Equal(session.CreatedAt))

	gotResults, err := s.ReadResults(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, results, gotResults)
}

func TestStore_WriteSessionIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	session := Session{ID: NewSessionID(), CreatedAt: time.Now(), Query: "1 2 3", Size: 3}
	require.NoError(t, s.WriteSession(ctx, session, []Result{{Position: 0, Source: "n", Complexity: 1}}))

	// A second write with the same ID keeps the original results.
	session.Query = "overwritten"
	require.NoError(t, s.WriteSession(ctx, session, []Result{{Position: 0, Source: "i", Complexity: 1}}))

	got, err := s.ReadSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 2 3", got.Query)

	results, err := s.ReadResults(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "n", results[0].Source)
}

func TestStore_ReadSessionsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		session := Session{
			ID:        NewSessionID(),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Query:     "1 2 3",
			Size:      3,
			Truncated: i == 2,
		}
		require.NoError(t, s.WriteSession(ctx, session, nil))
	}

	sessions, err := s.ReadSessions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].CreatedAt.After(sessions[1].CreatedAt))
	assert.True(t, sessions[0].Truncated)

	all, err := s.ReadSessions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_ReadSessionNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ReadSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReadResultsEmpty(t *testing.T) {
	s := openTestStore(t)
	results, err := s.ReadResults(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, results)
}
