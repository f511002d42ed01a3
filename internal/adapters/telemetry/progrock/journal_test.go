package progrock_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mpy/internal/adapters/telemetry/progrock"
	"go.trai.ch/mpy/internal/core/domain"
)

func recordRun(t *testing.T, dir, runID string) {
	t.Helper()

	recorder, err := progrock.Open(dir, runID)
	require.NoError(t, err)

	recorder.OnStageStart(domain.StageCompile)
	recorder.OnFileComplete(domain.StageCompile, "main.py", nil)
	recorder.OnFileComplete(domain.StageCompile, "lib/helper.py", errors.New("SyntaxError"))
	recorder.OnStageComplete(domain.StageCompile, domain.StageStatusFailed,
		domain.Counters{Discovered: 2, Compiled: 1, CompileFailed: 1})
	recorder.OnStageComplete(domain.StageLaunch, domain.StageStatusSkipped, domain.Counters{})

	require.NoError(t, recorder.Close())
}

func TestJournal_Replay(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")
	recordRun(t, dir, "run-1")

	journal, err := progrock.Find(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "run-1", journal.RunID)
	assert.FileExists(t, filepath.Join(dir, "run-1"+progrock.JournalExt))

	var out bytes.Buffer
	require.NoError(t, progrock.Replay(journal, &out))
	assert.NotEmpty(t, out.String())
}

func TestJournal_Find(t *testing.T) {
	dir := t.TempDir()
	recordRun(t, dir, "0a1b-old")
	recordRun(t, dir, "9f8e-new")

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "0a1b-old"+progrock.JournalExt), past, past))

	newest, err := progrock.Find(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "9f8e-new", newest.RunID)

	byPrefix, err := progrock.Find(dir, "0a1b")
	require.NoError(t, err)
	assert.Equal(t, "0a1b-old", byPrefix.RunID)

	_, err = progrock.Find(dir, "ffff")
	require.ErrorIs(t, err, progrock.ErrNoJournal)

	_, err = progrock.Find(filepath.Join(dir, "missing"), "")
	require.ErrorIs(t, err, progrock.ErrNoJournal)
}

func TestJournal_Prune(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	for i, id := range []string{"a", "b", "c", "d"} {
		recordRun(t, dir, id)
		stamp := now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(filepath.Join(dir, id+progrock.JournalExt), stamp, stamp))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), domain.FilePerm))

	require.NoError(t, progrock.Prune(dir, 2))

	journals, err := progrock.Journals(dir)
	require.NoError(t, err)
	ids := make([]string, 0, len(journals))
	for _, j := range journals {
		ids = append(ids, j.RunID)
	}
	assert.Equal(t, []string{"d", "c"}, ids)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestJournaled(t *testing.T) {
	dir := t.TempDir()
	for i := range progrock.KeepJournals + 3 {
		recordRun(t, dir, "run-"+string(rune('a'+i)))
	}

	observer, err := progrock.Journaled(dir, "latest")
	require.NoError(t, err)
	require.NoError(t, observer.Close())

	journals, err := progrock.Journals(dir)
	require.NoError(t, err)
	assert.Len(t, journals, progrock.KeepJournals)
}
