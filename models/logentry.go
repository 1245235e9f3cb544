// models/logentry.go

package models

import "time"

// LogEntry is one submitted answer. Input fields carry the trimmed form the
// handler validated, not the raw keystrokes. Entries are only ever appended,
// never read back by the game.
type LogEntry struct {
	Timestamp   time.Time
	PlayerCode  string
	QuestionID  int
	AnswerMode  string
	AnswerText  string
	StreetType  string
	StreetName  string
	HouseNumber string
}
