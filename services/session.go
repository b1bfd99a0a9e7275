package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"

	"Reelrank/config"

	"github.com/gorilla/sessions"
)

const (
	sessionName  = "reelrank-session"
	csrfTokenKey = "csrf_token"
)

// SessionStore wraps the signed cookie store used for flash messages and
// the per-browser CSRF token
type SessionStore struct {
	store *sessions.CookieStore
}

func NewSessionStore(cfg *config.ServerConfig) *SessionStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store}
}

func (s *SessionStore) Get(r *http.Request) (*sessions.Session, error) {
	return s.store.Get(r, sessionName)
}

// CSRFToken returns the session's token, creating and saving one if needed
func (s *SessionStore) CSRFToken(w http.ResponseWriter, r *http.Request) (string, error) {
	// A cookie signed with an old secret still yields a fresh session
	session, err := s.Get(r)
	if session == nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}

	if token, ok := session.Values[csrfTokenKey].(string); ok && token != "" {
		return token, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	session.Values[csrfTokenKey] = token
	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// ValidCSRFToken compares the submitted token with the one in the session
func (s *SessionStore) ValidCSRFToken(r *http.Request, submitted string) bool {
	if submitted == "" {
		return false
	}
	session, err := s.Get(r)
	if err != nil {
		return false
	}
	token, ok := session.Values[csrfTokenKey].(string)
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) == 1
}

// AddFlash queues a one-time message for the next rendered page
func (s *SessionStore) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	session, err := s.Get(r)
	if session == nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	session.AddFlash(msg)
	return session.Save(r, w)
}

// Flashes pops all queued messages
func (s *SessionStore) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := s.Get(r)
	if session == nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		return nil
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
