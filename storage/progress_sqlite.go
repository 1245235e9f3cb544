// storage/progress_sqlite.go

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"streethunt/models"
)

// SQLiteProgressStore keeps progress in an embedded SQLite database, one row
// per (player, question). Row-level writes remove the load-modify-save race
// of the JSON file entirely; select it with the sqlite store engine when the
// game outgrows a handful of players.
type SQLiteProgressStore struct {
	db *sql.DB
}

func NewSQLiteProgressStore(path string) (*SQLiteProgressStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s := &SQLiteProgressStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteProgressStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS progress (
			player_code TEXT NOT NULL,
			question_id INTEGER NOT NULL,
			correct     BOOLEAN NOT NULL DEFAULT TRUE,
			answer_text TEXT NOT NULL DEFAULT '',
			answer_link TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (player_code, question_id)
		)
	`)
	return err
}

func (s *SQLiteProgressStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteProgressStore) Load() (models.ProgressState, error) {
	rows, err := s.db.Query(`
		SELECT player_code, question_id, correct, answer_text, answer_link
		FROM progress
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	state := models.ProgressState{}
	for rows.Next() {
		var code string
		var id int
		var rec models.SolvedRecord
		if err := rows.Scan(&code, &id, &rec.Correct, &rec.Text, &rec.Link); err != nil {
			return nil, err
		}
		if state[code] == nil {
			state[code] = models.PlayerProgress{}
		}
		state[code][strconv.Itoa(id)] = rec
	}
	return state, rows.Err()
}

func (s *SQLiteProgressStore) Save(state models.ProgressState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM progress`); err != nil {
		return err
	}

	for code, progress := range state {
		for key, rec := range progress {
			id, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			if _, err := tx.Exec(`
				INSERT INTO progress (player_code, question_id, correct, answer_text, answer_link)
				VALUES (?, ?, ?, ?, ?)
			`, code, id, rec.Correct, rec.Text, rec.Link); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteProgressStore) PlayerProgress(code string, set models.QuestionSet) (models.PlayerProgress, error) {
	if code == "" {
		return models.PlayerProgress{}, nil
	}

	rows, err := s.db.Query(`
		SELECT question_id, correct, answer_text, answer_link
		FROM progress
		WHERE player_code = ?
	`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := models.PlayerProgress{}
	for rows.Next() {
		var id int
		var rec models.SolvedRecord
		if err := rows.Scan(&id, &rec.Correct, &rec.Text, &rec.Link); err != nil {
			return nil, err
		}
		progress[strconv.Itoa(id)] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if reconcile(progress, set) {
		for key, rec := range progress {
			id, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			if _, err := s.db.Exec(`
				UPDATE progress SET answer_text = ?, answer_link = ?
				WHERE player_code = ? AND question_id = ?
			`, rec.Text, rec.Link, code, id); err != nil {
				return nil, fmt.Errorf("refreshing progress row: %w", err)
			}
		}
	}

	return progress, nil
}

func (s *SQLiteProgressStore) SetSolved(code string, questionID int, rec models.SolvedRecord) error {
	if code == "" {
		return nil
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO progress (player_code, question_id, correct, answer_text, answer_link)
		VALUES (?, ?, ?, ?, ?)
	`, code, questionID, rec.Correct, rec.Text, rec.Link)
	return err
}

func (s *SQLiteProgressStore) ClearAll() error {
	_, err := s.db.Exec(`DELETE FROM progress`)
	return err
}
