// storage/progress.go

package storage

import (
	"strconv"

	"streethunt/models"
)

// ProgressStore persists which questions each player has solved.
//
// Save overwrites the whole state; callers load-modify-save. Both engines
// serialize that cycle internally, so concurrent requests in this process
// cannot lose each other's writes. Concurrent *processes* sharing a JSON
// file still race last-write-wins, which is fine for a single game server.
type ProgressStore interface {
	Load() (models.ProgressState, error)
	Save(state models.ProgressState) error

	// PlayerProgress returns the player's solved records, reconciled
	// against the current question set. An empty code yields an empty map.
	PlayerProgress(code string, set models.QuestionSet) (models.PlayerProgress, error)

	// SetSolved records a correct answer. No-op for an empty player code.
	SetSolved(code string, questionID int, rec models.SolvedRecord) error

	// ClearAll wipes every player's progress. There is no undo.
	ClearAll() error
}

// reconcile refreshes the explanation text/link of solved records to match
// the current sheet data, and reports whether anything changed. Records
// whose question id is no longer in the sheet are left untouched: stale but
// not deleted. Unsolved records are never considered.
func reconcile(progress models.PlayerProgress, set models.QuestionSet) bool {
	changed := false

	for key, rec := range progress {
		if !rec.Correct {
			continue
		}

		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}

		q, ok := set.ByID[id]
		if !ok {
			continue
		}

		if rec.Text != q.AnswerText || rec.Link != q.AnswerLink {
			rec.Text = q.AnswerText
			rec.Link = q.AnswerLink
			progress[key] = rec
			changed = true
		}
	}

	return changed
}
