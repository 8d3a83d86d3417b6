package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// Name is the cookie name of the web session.
const Name = "ecoleta_session"

// Flasher stores one-shot messages that survive exactly one redirect.
type Flasher struct {
	store sessions.Store
}

// NewFlasher returns a Flasher over store.
func NewFlasher(store sessions.Store) *Flasher {
	return &Flasher{store: store}
}

// Add queues msg for the next page view. It must run before the response
// header is written.
func (f *Flasher) Add(w http.ResponseWriter, r *http.Request, msg string) error {
	s, err := f.store.Get(r, Name)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	s.AddFlash(msg)
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Pop returns and clears the queued messages.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) ([]string, error) {
	s, err := f.store.Get(r, Name)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	if err := s.Save(r, w); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	msgs := make([]string, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs, nil
}
