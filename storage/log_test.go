package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streethunt/models"
)

func readLog(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAnswerLogAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers", "answers.csv")
	log := NewAnswerLog(path)

	err := log.Append(models.LogEntry{
		Timestamp:  time.Date(2026, 5, 1, 12, 30, 15, 0, time.UTC),
		PlayerCode: "alpha",
		QuestionID: 7,
		AnswerMode: "text",
		AnswerText: "Paris",
	})
	require.NoError(t, err)

	rows := readLog(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, logHeader, rows[0])
	assert.Equal(t, []string{"2026-05-01T12:30:15", "alpha", "7", "text", "Paris", "", "", ""}, rows[1])
}

func TestAnswerLogHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.csv")
	log := NewAnswerLog(path)

	for i := 0; i < 3; i++ {
		require.NoError(t, log.Append(models.LogEntry{
			Timestamp:  time.Now(),
			PlayerCode: "alpha",
			QuestionID: i,
			AnswerMode: "text",
			AnswerText: "x",
		}))
	}

	rows := readLog(t, path)
	assert.Len(t, rows, 4)
	assert.Equal(t, "timestamp", rows[0][0])
}

func TestAnswerLogConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.csv")
	log := NewAnswerLog(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, log.Append(models.LogEntry{
				Timestamp:  time.Now(),
				PlayerCode: "racer",
				QuestionID: n,
				AnswerMode: "text",
				AnswerText: "answer",
			}))
		}(i)
	}
	wg.Wait()

	// Every row must still parse cleanly: no interleaved lines.
	rows := readLog(t, path)
	assert.Len(t, rows, 21)
	for _, row := range rows {
		assert.Len(t, row, 8)
	}
}
