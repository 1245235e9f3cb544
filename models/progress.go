// models/progress.go

package models

// SolvedRecord is the persisted proof that a player answered a question
// correctly, plus the explanation shown to them afterwards.
type SolvedRecord struct {
	Correct bool   `json:"correct"`
	Text    string `json:"text"`
	Link    string `json:"link"`
}

// PlayerProgress maps question id (string key, to keep the JSON file stable)
// to the player's solved record for it.
type PlayerProgress map[string]SolvedRecord

// ProgressState is the whole persisted store: player code -> progress.
type ProgressState map[string]PlayerProgress
