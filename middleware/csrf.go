package middleware

import (
	"net/http"

	"Reelrank/logger"
)

const (
	CSRFFormField = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"
)

// TokenValidator checks a submitted CSRF token against the caller's session
type TokenValidator interface {
	ValidCSRFToken(r *http.Request, submitted string) bool
}

// CSRF rejects state-changing POST requests that do not carry the session's
// token, either as a form field or a header.
func CSRF(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeader)
			if submitted == "" {
				submitted = r.PostFormValue(CSRFFormField)
			}

			if !tokens.ValidCSRFToken(r, submitted) {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Msg("Rejected request with invalid CSRF token")
				http.Error(w, "Invalid or missing CSRF token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
