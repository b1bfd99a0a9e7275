package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Reelrank/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions() *SessionStore {
	return NewSessionStore(&config.ServerConfig{SessionSecret: "0123456789abcdef0123456789abcdef"})
}

// carryCookies copies the cookies set on rec into a fresh request
func carryCookies(rec *httptest.ResponseRecorder, method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionStore_CSRFToken(t *testing.T) {
	sessions := newTestSessions()

	rec := httptest.NewRecorder()
	token, err := sessions.CSRFToken(rec, httptest.NewRequest(http.MethodGet, "/add", nil))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	next := carryCookies(rec, http.MethodPost, "/add")
	assert.True(t, sessions.ValidCSRFToken(next, token))
	assert.False(t, sessions.ValidCSRFToken(next, token+"x"))
	assert.False(t, sessions.ValidCSRFToken(next, ""))
}

func TestSessionStore_CSRFTokenIsStable(t *testing.T) {
	sessions := newTestSessions()

	rec := httptest.NewRecorder()
	first, err := sessions.CSRFToken(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	second, err := sessions.CSRFToken(httptest.NewRecorder(), carryCookies(rec, http.MethodGet, "/"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSessionStore_NoSessionRejectsToken(t *testing.T) {
	sessions := newTestSessions()
	r := httptest.NewRequest(http.MethodPost, "/edit", nil)
	assert.False(t, sessions.ValidCSRFToken(r, "anything"))
}

func TestSessionStore_ForeignCookieRejected(t *testing.T) {
	other := NewSessionStore(&config.ServerConfig{SessionSecret: "ffffffffffffffffffffffffffffffff"})
	rec := httptest.NewRecorder()
	token, err := other.CSRFToken(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	sessions := newTestSessions()
	assert.False(t, sessions.ValidCSRFToken(carryCookies(rec, http.MethodPost, "/"), token))
}

func TestSessionStore_Flashes(t *testing.T) {
	sessions := newTestSessions()

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/delete?id=1", nil), "Removed Heat from your list."))

	rec2 := httptest.NewRecorder()
	msgs := sessions.Flashes(rec2, carryCookies(rec, http.MethodGet, "/"))
	assert.Equal(t, []string{"Removed Heat from your list."}, msgs)

	// popped flashes do not come back
	assert.Empty(t, sessions.Flashes(httptest.NewRecorder(), carryCookies(rec2, http.MethodGet, "/")))
}
