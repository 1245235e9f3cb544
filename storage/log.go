// storage/log.go

package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"streethunt/models"
)

var logHeader = []string{
	"timestamp",
	"player_code",
	"question_id",
	"answer_mode",
	"answer_text",
	"street_type",
	"street_name",
	"house_number",
}

// AnswerLog is the append-only audit trail of every submission. The game
// never reads it back; operators open the CSV in a spreadsheet.
type AnswerLog struct {
	path string
	mu   sync.Mutex
}

func NewAnswerLog(path string) *AnswerLog {
	return &AnswerLog{path: path}
}

// Append writes one row, creating the file with its header on first use.
// Each row is a single O_APPEND write, and the mutex serializes in-process
// writers, so concurrent requests cannot interleave within a line.
func (l *AnswerLog) Append(entry models.LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureFile(); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening answer log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		entry.Timestamp.Format("2006-01-02T15:04:05"),
		entry.PlayerCode,
		strconv.Itoa(entry.QuestionID),
		entry.AnswerMode,
		entry.AnswerText,
		entry.StreetType,
		entry.StreetName,
		entry.HouseNumber,
	}); err != nil {
		return fmt.Errorf("writing answer log row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (l *AnswerLog) ensureFile() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			// Another request created it between Stat and here.
			return nil
		}
		return fmt.Errorf("creating answer log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(logHeader); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
