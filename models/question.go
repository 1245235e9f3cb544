// models/question.go

package models

// DefaultCategory is assigned to feed rows with an empty category column.
const DefaultCategory = "Без категории"

type Question struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Hint     string `json:"hint"`
	Media    string `json:"media"`

	PossibleAnswers []string `json:"possible_answers"`
	AdressYandex    string   `json:"adress_yandex"`
	StreetStatus    string   `json:"street_status"`
	StreetName      string   `json:"street_name"`
	HouseN          string   `json:"house_n"`

	AnswerText string `json:"answer_text"`
	AnswerLink string `json:"answer_link"`
}

// QuestionSet is the result of one feed load. ByID and ByCategory always
// reference the same Question values. CategoryOrder lists categories in
// first-appearance order so the page renders them the way the sheet is laid
// out.
type QuestionSet struct {
	ByID          map[int]*Question
	ByCategory    map[string][]*Question
	CategoryOrder []string
}

func EmptyQuestionSet() QuestionSet {
	return QuestionSet{
		ByID:       make(map[int]*Question),
		ByCategory: make(map[string][]*Question),
	}
}

func (s QuestionSet) Len() int {
	return len(s.ByID)
}
