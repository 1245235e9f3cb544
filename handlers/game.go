// handlers/game.go

package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"streethunt/checker"
	"streethunt/feed"
	"streethunt/models"
	"streethunt/storage"

	"github.com/gorilla/sessions"
)

const sessionName = "session"

// App bundles everything the game handlers need. Handlers are closures over
// it, registered in main.
type App struct {
	Loader               *feed.Loader
	Log                  *storage.AnswerLog
	Progress             storage.ProgressStore
	Store                *sessions.CookieStore
	CategoryDescriptions map[string]string

	tmpl *template.Template
}

func NewApp(
	loader *feed.Loader,
	log *storage.AnswerLog,
	progress storage.ProgressStore,
	store *sessions.CookieStore,
	descriptions map[string]string,
	templatePath string,
) *App {
	funcs := template.FuncMap{
		// The hint column holds a ;-separated list; the page picks one at
		// random client side from this JSON attribute.
		"hintJSON": func(hint string) string {
			var hints []string
			for _, h := range strings.Split(hint, ";") {
				if h = strings.TrimSpace(h); h != "" {
					hints = append(hints, h)
				}
			}
			data, _ := json.Marshal(hints)
			return string(data)
		},
		"solved": func(progress models.PlayerProgress, id int) *models.SolvedRecord {
			if rec, ok := progress[strconv.Itoa(id)]; ok && rec.Correct {
				return &rec
			}
			return nil
		},
	}

	return &App{
		Loader:               loader,
		Log:                  log,
		Progress:             progress,
		Store:                store,
		CategoryDescriptions: descriptions,
		tmpl:                 template.Must(template.New("index.html").Funcs(funcs).ParseFiles(templatePath)),
	}
}

type indexData struct {
	PlayerCode           string
	Questions            models.QuestionSet
	Progress             models.PlayerProgress
	CategoryDescriptions map[string]string
	Flashes              []FlashMessage
	LastQuestionID       int
}

// IndexPage renders the whole game: every category with its questions, the
// player's solved answers unlocked. The sheet is re-fetched on every view so
// edits show up immediately.
func IndexPage(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set := app.Loader.Load(r.Context())

		session, _ := app.Store.Get(r, sessionName)
		playerCode, _ := session.Values["player_code"].(string)
		lastQuestionID, _ := session.Values["last_question_id"].(int)
		delete(session.Values, "last_question_id")

		progress, err := app.Progress.PlayerProgress(playerCode, set)
		if err != nil {
			slog.Error("loading player progress failed", "player", playerCode, "err", err)
			progress = models.PlayerProgress{}
		}

		data := indexData{
			PlayerCode:           playerCode,
			Questions:            set,
			Progress:             progress,
			CategoryDescriptions: app.CategoryDescriptions,
			Flashes:              popFlashes(session),
			LastQuestionID:       lastQuestionID,
		}

		if err := session.Save(r, w); err != nil {
			slog.Error("saving session failed", "err", err)
		}

		if err := app.tmpl.Execute(w, data); err != nil {
			slog.Error("rendering index failed", "err", err)
		}
	}
}

// SetProfile stores the self-chosen player code in the session. Two players
// typing the same code share progress; that is how teams play together.
func SetProfile(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := app.Store.Get(r, sessionName)

		code := strings.TrimSpace(r.FormValue("player_code"))
		if code == "" {
			addFlash(session, FlashWarning, "Придумай и введи код игрока (любое слово или фраза).")
			redirectHome(session, w, r)
			return
		}

		session.Values["player_code"] = code
		addFlash(session, FlashSuccess, "Код игрока установлен: "+code)
		redirectHome(session, w, r)
	}
}

// SubmitAnswer validates the form, logs the attempt, checks it, and on
// success persists the solved record. Every path ends in a redirect to /
// with a flash explaining what happened.
func SubmitAnswer(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := app.Store.Get(r, sessionName)
		playerCode, _ := session.Values["player_code"].(string)

		rawID := r.FormValue("question_id")
		if rawID == "" {
			addFlash(session, FlashDanger, "Ошибка: неизвестный вопрос.")
			redirectHome(session, w, r)
			return
		}

		questionID, err := strconv.Atoi(rawID)
		if err != nil {
			addFlash(session, FlashDanger, "Ошибка: неправильный идентификатор вопроса.")
			redirectHome(session, w, r)
			return
		}

		set := app.Loader.Load(r.Context())
		question, ok := set.ByID[questionID]
		if !ok {
			addFlash(session, FlashDanger, "Ошибка: такого вопроса нет.")
			redirectHome(session, w, r)
			return
		}

		if playerCode == "" {
			addFlash(session, FlashWarning, "Сначала введи свой код игрока наверху страницы.")
			redirectHome(session, w, r)
			return
		}

		mode := r.FormValue("answer_mode")
		var input checker.Input

		switch mode {
		case checker.ModeText:
			input.AnswerText = strings.TrimSpace(r.FormValue("answer_text"))
			if input.AnswerText == "" {
				addFlash(session, FlashWarning, "Пожалуйста, введите ответ.")
				redirectHome(session, w, r)
				return
			}

		case checker.ModeAddress:
			input.StreetType = strings.TrimSpace(r.FormValue("street_type"))
			input.StreetName = strings.TrimSpace(r.FormValue("street_name"))
			input.HouseNumber = strings.TrimSpace(r.FormValue("house_number"))
			if input.StreetName == "" || input.HouseNumber == "" {
				addFlash(session, FlashWarning, "Заполни название улицы и номер дома.")
				redirectHome(session, w, r)
				return
			}

		default:
			addFlash(session, FlashDanger, "Ошибка: неизвестный тип ответа.")
			redirectHome(session, w, r)
			return
		}

		// Every attempt is logged, right or wrong.
		if err := app.Log.Append(models.LogEntry{
			Timestamp:   time.Now(),
			PlayerCode:  playerCode,
			QuestionID:  questionID,
			AnswerMode:  mode,
			AnswerText:  input.AnswerText,
			StreetType:  input.StreetType,
			StreetName:  input.StreetName,
			HouseNumber: input.HouseNumber,
		}); err != nil {
			slog.Error("appending answer log failed", "err", err)
		}

		result := checker.Check(question, mode, input)

		if result.Correct {
			addFlash(session, FlashSuccess, "Верно! ✔️")
			if err := app.Progress.SetSolved(playerCode, questionID, models.SolvedRecord{
				Correct: true,
				Text:    result.Text,
				Link:    result.Link,
			}); err != nil {
				slog.Error("saving progress failed", "player", playerCode, "err", err)
			}
		} else {
			addFlash(session, FlashDanger, "Пока что неверно. Попробуй ещё раз.")
		}

		// Remembered so the page scrolls back to the card just answered.
		session.Values["last_question_id"] = questionID

		redirectHome(session, w, r)
	}
}

// ClearProgress wipes every player's progress. Deliberately unauthenticated
// and unconfirmed: the game has no operator accounts, the route is simply
// not linked anywhere on the page.
func ClearProgress(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.Progress.ClearAll(); err != nil {
			slog.Error("clearing progress failed", "err", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func redirectHome(session *sessions.Session, w http.ResponseWriter, r *http.Request) {
	if err := session.Save(r, w); err != nil {
		slog.Error("saving session failed", "err", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
