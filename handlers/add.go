package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"Reelrank/forms"
	"Reelrank/logger"
	"Reelrank/services"
)

type AddData struct {
	PageData
	Form   forms.AddMovieForm
	Errors forms.Errors
}

type SelectData struct {
	PageData
	Query   string
	Options []services.SearchResult
}

// Add shows the title form on GET. On POST it searches the movie database and
// lists every match for the user to pick from.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	form := forms.AddMovieForm{}
	errs := forms.Errors{}
	status := http.StatusOK

	if r.Method == http.MethodPost {
		form = forms.ParseAddMovieForm(r)
		errs = form.Validate()
		if errs.Valid() {
			results, err := h.searcher.SearchByTitle(r.Context(), form.Title)
			if err != nil {
				h.handleError(w, r, err)
				return
			}
			logger.Debug().Str("query", form.Title).Int("results", len(results)).Msg("Movie search")

			page, err := h.page(w, r, "/add")
			if err != nil {
				h.handleError(w, r, err)
				return
			}
			h.render(w, r, h.selectTmpl, http.StatusOK, SelectData{PageData: page, Query: form.Title, Options: results})
			return
		}
		status = http.StatusUnprocessableEntity
	}

	page, err := h.page(w, r, "/add")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, h.addTmpl, status, AddData{PageData: page, Form: form, Errors: errs})
}

// Find imports the selected movie from the movie database and sends the
// user on to rate it
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		http.Error(w, "Missing movie id", http.StatusBadRequest)
		return
	}
	externalID, err := strconv.Atoi(idStr)
	if err != nil || externalID <= 0 {
		http.Error(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	details, err := h.searcher.FetchDetails(r.Context(), externalID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	movie := services.NewMovieFromDetails(details, h.imageBaseURL)
	if err := h.store.Create(r.Context(), &movie); err != nil {
		h.handleError(w, r, err)
		return
	}

	logger.Info().Int("id", movie.ID).Int("tmdb_id", externalID).Str("title", movie.Title).Msg("Added movie")
	h.flash(w, r, fmt.Sprintf("Added %s. Now give it a rating.", movie.Title))
	http.Redirect(w, r, fmt.Sprintf("/edit?id=%d", movie.ID), http.StatusSeeOther)
}
