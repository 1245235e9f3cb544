// feed/feed.go

package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"streethunt/models"
)

// FetchTimeout bounds the spreadsheet request so a page view can never hang
// on Google.
const FetchTimeout = 10 * time.Second

// Loader fetches the question sheet (CSV export of a Google spreadsheet) and
// parses it into lookup views. The sheet is the source of truth: nothing is
// cached, callers load a fresh set on every page view.
type Loader struct {
	url    string
	client *http.Client
}

func NewLoader(url string) *Loader {
	return &Loader{
		url:    url,
		client: &http.Client{Timeout: FetchTimeout},
	}
}

// Load fetches and parses the feed. Any fetch or parse failure is logged and
// yields an empty set: the game degrades to a page with no questions rather
// than an error to the player.
func (l *Loader) Load(ctx context.Context) models.QuestionSet {
	set, err := l.load(ctx)
	if err != nil {
		slog.Error("loading question sheet failed", "url", l.url, "err", err)
		return models.EmptyQuestionSet()
	}
	return set
}

func (l *Loader) load(ctx context.Context) (models.QuestionSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return models.QuestionSet{}, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return models.QuestionSet{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.QuestionSet{}, fmt.Errorf("sheet export returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.QuestionSet{}, err
	}

	return Parse(string(body))
}

// Expected sheet columns, addressed by header name so column order in the
// spreadsheet does not matter:
// id, category, question, hint, media, possible_answers, adress_yandex,
// street_status, street_name, n, answer, link.
func Parse(text string) (models.QuestionSet, error) {
	// Spreadsheet exports are UTF-8 with an occasional BOM.
	text = strings.TrimPrefix(text, "\uFEFF")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // tolerate ragged trailing rows

	header, err := r.Read()
	if err != nil {
		return models.QuestionSet{}, fmt.Errorf("reading header row: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	set := models.EmptyQuestionSet()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.QuestionSet{}, fmt.Errorf("reading sheet row: %w", err)
		}

		// Rows without a numeric id are blanks or notes in the sheet.
		id, err := strconv.Atoi(field(row, "id"))
		if err != nil {
			continue
		}

		category := field(row, "category")
		if category == "" {
			category = models.DefaultCategory
		}

		q := &models.Question{
			ID:              id,
			Category:        category,
			Question:        field(row, "question"),
			Hint:            field(row, "hint"),
			Media:           field(row, "media"),
			PossibleAnswers: splitAnswers(field(row, "possible_answers")),
			AdressYandex:    field(row, "adress_yandex"),
			StreetStatus:    field(row, "street_status"),
			StreetName:      field(row, "street_name"),
			HouseN:          field(row, "n"),
			AnswerText:      field(row, "answer"),
			AnswerLink:      field(row, "link"),
		}

		// Last row wins on duplicate ids; the category list keeps every row.
		set.ByID[id] = q
		if _, seen := set.ByCategory[category]; !seen {
			set.CategoryOrder = append(set.CategoryOrder, category)
		}
		set.ByCategory[category] = append(set.ByCategory[category], q)
	}

	for _, questions := range set.ByCategory {
		sort.Slice(questions, func(i, j int) bool {
			return questions[i].ID < questions[j].ID
		})
	}

	return set, nil
}

func splitAnswers(raw string) []string {
	var answers []string
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			answers = append(answers, part)
		}
	}
	return answers
}
