package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticToken string

func (s staticToken) ValidCSRFToken(r *http.Request, submitted string) bool {
	return submitted != "" && submitted == string(s)
}

func csrfTarget() (http.Handler, *bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})
	return CSRF(staticToken("good"))(next), &called
}

func TestCSRF_GetPassesThrough(t *testing.T) {
	h, called := csrfTarget()
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edit?id=1", nil))

	assert.True(t, *called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRF_Post(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		header string
		want   int
	}{
		{name: "form field", form: url.Values{"csrf_token": {"good"}}, want: http.StatusNoContent},
		{name: "header", header: "good", want: http.StatusNoContent},
		{name: "missing", want: http.StatusForbidden},
		{name: "wrong", form: url.Values{"csrf_token": {"bad"}}, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, called := csrfTarget()
			req := httptest.NewRequest(http.MethodPost, "/delete?id=1", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.header != "" {
				req.Header.Set(CSRFHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want == http.StatusNoContent, *called)
		})
	}
}
