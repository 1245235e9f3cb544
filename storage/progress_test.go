package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streethunt/models"
)

func questionSet(questions ...*models.Question) models.QuestionSet {
	set := models.EmptyQuestionSet()
	for _, q := range questions {
		set.ByID[q.ID] = q
		set.ByCategory[q.Category] = append(set.ByCategory[q.Category], q)
	}
	return set
}

func newJSONStore(t *testing.T) (*JSONProgressStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.json")
	return NewJSONProgressStore(path), path
}

func TestJSONStoreMissingFileIsEmpty(t *testing.T) {
	store, _ := newJSONStore(t)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestJSONStoreCorruptFileIsEmpty(t *testing.T) {
	store, path := newJSONStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestJSONStoreSetSolvedAndLoad(t *testing.T) {
	store, _ := newJSONStore(t)

	rec := models.SolvedRecord{Correct: true, Text: "answer", Link: "https://example.com"}
	require.NoError(t, store.SetSolved("alpha", 7, rec))

	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, rec, state["alpha"]["7"])
}

func TestJSONStoreSetSolvedEmptyCodeIsNoop(t *testing.T) {
	store, path := newJSONStore(t)

	require.NoError(t, store.SetSolved("", 7, models.SolvedRecord{Correct: true}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file should be written for an empty code")
}

func TestJSONStorePlayerProgressEmptyCode(t *testing.T) {
	store, _ := newJSONStore(t)

	progress, err := store.PlayerProgress("", models.EmptyQuestionSet())
	require.NoError(t, err)
	assert.Empty(t, progress)
}

func TestJSONStoreReconciliation(t *testing.T) {
	store, path := newJSONStore(t)

	require.NoError(t, store.SetSolved("alpha", 7, models.SolvedRecord{
		Correct: true, Text: "stale", Link: "https://old.example.com",
	}))

	set := questionSet(&models.Question{
		ID: 7, Category: "Cats", AnswerText: "fresh", AnswerLink: "https://new.example.com",
	})

	progress, err := store.PlayerProgress("alpha", set)
	require.NoError(t, err)
	assert.Equal(t, "fresh", progress["7"].Text)
	assert.Equal(t, "https://new.example.com", progress["7"].Link)

	// Refreshed data must be persisted...
	state, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh", state["alpha"]["7"].Text)

	// ...and a second read with unchanged data must not rewrite the file.
	before, err := os.Stat(path)
	require.NoError(t, err)
	beforeMod := before.ModTime()

	_, err = store.PlayerProgress("alpha", set)
	require.NoError(t, err)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, beforeMod, after.ModTime())
}

func TestJSONStoreReconciliationLeavesVanishedIDs(t *testing.T) {
	store, _ := newJSONStore(t)

	rec := models.SolvedRecord{Correct: true, Text: "kept", Link: "https://example.com"}
	require.NoError(t, store.SetSolved("alpha", 99, rec))

	// The feed no longer contains question 99: the record is stale but
	// must survive untouched.
	set := questionSet(&models.Question{ID: 1, Category: "Cats", AnswerText: "other"})

	progress, err := store.PlayerProgress("alpha", set)
	require.NoError(t, err)
	assert.Equal(t, rec, progress["99"])
}

func TestJSONStoreReconciliationSkipsUnsolved(t *testing.T) {
	store, _ := newJSONStore(t)

	// An incorrect record should never exist, but if one sneaks in it must
	// not be reconciled against the live feed.
	require.NoError(t, store.Save(models.ProgressState{
		"alpha": {"7": {Correct: false, Text: "attempt"}},
	}))

	set := questionSet(&models.Question{ID: 7, Category: "Cats", AnswerText: "fresh"})

	progress, err := store.PlayerProgress("alpha", set)
	require.NoError(t, err)
	assert.Equal(t, "attempt", progress["7"].Text)
}

func TestJSONStoreClearAll(t *testing.T) {
	store, _ := newJSONStore(t)

	require.NoError(t, store.SetSolved("alpha", 1, models.SolvedRecord{Correct: true}))
	require.NoError(t, store.SetSolved("beta", 2, models.SolvedRecord{Correct: true}))
	require.NoError(t, store.ClearAll())

	progress, err := store.PlayerProgress("alpha", models.EmptyQuestionSet())
	require.NoError(t, err)
	assert.Empty(t, progress)

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestFactory(t *testing.T) {
	dir := t.TempDir()

	jsonStore, err := NewByEngine("", filepath.Join(dir, "p.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONProgressStore{}, jsonStore)

	_, err = NewByEngine("dynamo", filepath.Join(dir, "p"))
	assert.Error(t, err)
}
