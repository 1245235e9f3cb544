// handlers/flash.go

package handlers

import (
	"encoding/gob"

	"github.com/gorilla/sessions"
)

// Flash severities, matching the bootstrap alert classes in the template.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// FlashMessage is shown once on the next page render after a redirect.
type FlashMessage struct {
	Level string
	Text  string
}

func init() {
	// Flashes travel inside the session cookie.
	gob.Register(FlashMessage{})
}

func addFlash(session *sessions.Session, level, text string) {
	session.AddFlash(FlashMessage{Level: level, Text: text})
}

// popFlashes drains pending flashes. The caller must save the session so
// they are not shown twice.
func popFlashes(session *sessions.Session) []FlashMessage {
	raw := session.Flashes()
	flashes := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(FlashMessage); ok {
			flashes = append(flashes, msg)
		}
	}
	return flashes
}
