package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"Reelrank/forms"
	"Reelrank/metrics"
	"Reelrank/models"
)

type ListData struct {
	PageData
	Movies []models.Movie
}

type EditData struct {
	PageData
	Movie  *models.Movie
	Form   forms.RateMovieForm
	Errors forms.Errors
}

// Home lists the movies by rating. Reading the list also rewrites the
// stored ranking so it matches the current order.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	movies, err := h.store.ListRanked(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	metrics.MoviesListed.Set(float64(len(movies)))

	page, err := h.page(w, r, "/")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, h.indexTmpl, http.StatusOK, ListData{PageData: page, Movies: movies})
}

// Edit shows the rating form on GET and saves rating and review on POST
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDFromQuery(r, "id")
	if err != nil {
		http.Error(w, "Movie not found", http.StatusNotFound)
		return
	}

	movie, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	form := forms.RateMovieForm{Review: movie.ReviewText()}
	if movie.Review != nil || movie.Rating != 0 {
		form.Rating = strconv.FormatFloat(movie.Rating, 'f', -1, 64)
	}
	errs := forms.Errors{}
	status := http.StatusOK

	if r.Method == http.MethodPost {
		form = forms.ParseRateMovieForm(r)
		errs = form.Validate()
		if errs.Valid() {
			upd := models.MovieUpdate{Rating: form.Value(), Review: form.Review}
			if err := h.store.Update(r.Context(), id, upd); err != nil {
				h.handleError(w, r, err)
				return
			}
			h.flash(w, r, fmt.Sprintf("Saved your rating for %s.", movie.Title))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		status = http.StatusUnprocessableEntity
	}

	page, err := h.page(w, r, "/edit")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, h.editTmpl, status, EditData{PageData: page, Movie: movie, Form: form, Errors: errs})
}

// Delete removes a movie permanently
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDFromQuery(r, "id")
	if err != nil {
		http.Error(w, "Movie not found", http.StatusNotFound)
		return
	}

	movie, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.flash(w, r, fmt.Sprintf("Removed %s from your list.", movie.Title))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
