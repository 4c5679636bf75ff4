package server

import (
	"encoding/gob"
	"net/http"

	"mepdesign/internal/logging"
)

const sessionName = "mepdesign-session"

// FlashMessage is a one-shot notification shown on the next rendered page
type FlashMessage struct {
	Type string // success, error, warning, info
	Text string
}

func init() {
	gob.Register(FlashMessage{})
}

// addFlash queues a flash message in the session
func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, msgType, text string) {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		logging.Warning("Failed to get session: %v", err)
		return
	}
	session.AddFlash(FlashMessage{Type: msgType, Text: text})
	if err := session.Save(r, w); err != nil {
		logging.Warning("Failed to save session: %v", err)
	}
}

// takeFlashes returns and clears any queued flash messages
func (s *Server) takeFlashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	session, err := s.sessionStore.Get(r, sessionName)
	if err != nil {
		return nil
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		logging.Warning("Failed to save session: %v", err)
	}

	messages := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(FlashMessage); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
