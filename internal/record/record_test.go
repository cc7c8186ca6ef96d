package record_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leighmacdonald/board-tui/internal/record"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	recordings, errNew := record.New(dir)
	require.NoError(t, errNew)

	started := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	session, errCreate := recordings.Create(started)
	require.NoError(t, errCreate)

	session.Record([]byte("{\n  \"type\": \"board\",\n  \"payload\": {\"row\": 1, \"col\": 2, \"type\": \"x\"}\n}"))
	session.Record([]byte("not json"))
	session.Record([]byte(`{"type":"score-sheet-cell","payload":{"row":0,"index":1,"value":3}}`))
	require.NoError(t, session.Close())

	body, errRead := os.ReadFile(filepath.Join(dir, "20240501-123000.jsonl"))
	require.NoError(t, errRead)
	require.Equal(t,
		`{"type":"board","payload":{"row":1,"col":2,"type":"x"}}`+"\n"+
			`{"type":"score-sheet-cell","payload":{"row":0,"index":1,"value":3}}`+"\n",
		string(body))
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	recordings, errNew := record.New(dir)
	require.NoError(t, errNew)

	now := time.Now()
	stale := filepath.Join(dir, "old.jsonl")
	fresh := filepath.Join(dir, "new.jsonl")
	other := filepath.Join(dir, "notes.txt")

	for _, name := range []string{stale, fresh, other} {
		require.NoError(t, os.WriteFile(name, []byte("{}\n"), 0o600))
	}

	old := now.Add(-time.Hour * 24 * 30)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(other, old, old))

	removed, errPrune := recordings.Prune(now)
	require.NoError(t, errPrune)
	require.Equal(t, 1, removed)

	require.NoFileExists(t, stale)
	require.FileExists(t, fresh)
	require.FileExists(t, other)
}
