// checker/checker.go

package checker

import (
	"strings"

	"streethunt/models"
)

// Answer modes accepted by the game.
const (
	ModeText    = "text"
	ModeAddress = "address"
)

// Input carries the raw fields of one submission. Only the fields for the
// submitted mode are filled in.
type Input struct {
	AnswerText  string
	StreetType  string
	StreetName  string
	HouseNumber string
}

// Result of checking one submission. Text and Link always carry the
// question's explanation so the caller can show it when Correct is true.
type Result struct {
	Correct bool   `json:"correct"`
	Text    string `json:"text"`
	Link    string `json:"link"`
}

// Check compares the player's input against the question's accepted answers.
// An unknown mode is never correct; validating the mode is the caller's job.
func Check(q *models.Question, mode string, in Input) Result {
	correct := false

	switch mode {
	case ModeText:
		user := NormalizeText(in.AnswerText)

		// Empty input must never match, even when an accepted variant
		// normalizes to empty as well.
		if user != "" {
			for _, cand := range q.PossibleAnswers {
				if user == NormalizeText(cand) {
					correct = true
					break
				}
			}
			// adress_yandex counts as one more accepted variant.
			if !correct && q.AdressYandex != "" && user == NormalizeText(q.AdressYandex) {
				correct = true
			}
		}

	case ModeAddress:
		correct = normalizeStreetType(in.StreetType) == normalizeStreetType(q.StreetStatus) &&
			NormalizeText(in.StreetName) == NormalizeText(q.StreetName) &&
			NormalizeNumber(in.HouseNumber) == NormalizeNumber(q.HouseN)
	}

	return Result{
		Correct: correct,
		Text:    q.AnswerText,
		Link:    q.AnswerLink,
	}
}

// normalizeStreetType additionally drops the abbreviation dot, so "Ул."
// matches "ул".
func normalizeStreetType(s string) string {
	return strings.TrimRight(NormalizeText(s), ".")
}
