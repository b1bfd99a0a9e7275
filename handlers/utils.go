package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"Reelrank/logger"
	"Reelrank/services"
	"Reelrank/templates"
)

func GetFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatRating": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
	}
}

// LoadTemplate loads a page with the base layout, components and function map
func LoadTemplate(page string) (*template.Template, error) {
	return templates.Load(page, GetFuncMap())
}

// PageData is embedded by every page's data
type PageData struct {
	CurrentPage string
	CSRFToken   string
	Flashes     []string
}

// page pops pending flashes and makes sure the session carries a CSRF token
func (h *Handler) page(w http.ResponseWriter, r *http.Request, current string) (PageData, error) {
	token, err := h.sessions.CSRFToken(w, r)
	if err != nil {
		return PageData{}, err
	}
	return PageData{
		CurrentPage: current,
		CSRFToken:   token,
		Flashes:     h.sessions.Flashes(w, r),
	}, nil
}

// render executes into a buffer first so a template error still produces a
// clean 500 instead of a half-written page
func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		h.handleError(w, r, fmt.Errorf("failed to render %s: %w", tmpl.Name(), err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *Handler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	if err := h.sessions.AddFlash(w, r, msg); err != nil {
		logger.Warn().Err(err).Msg("Failed to store flash message")
	}
}

// handleError maps service errors onto HTTP status codes
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Movie not found", http.StatusNotFound)
	case errors.Is(err, services.ErrConflict):
		http.Error(w, "That movie is already on your list", http.StatusConflict)
	case errors.Is(err, services.ErrExternalService):
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Movie database request failed")
		http.Error(w, "The movie database is unavailable, try again later", http.StatusBadGateway)
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// ParseIDFromQuery extracts and parses an integer ID from query parameters
func ParseIDFromQuery(r *http.Request, param string) (int, error) {
	idStr := r.URL.Query().Get(param)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s parameter", param)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", param)
	}
	return id, nil
}
