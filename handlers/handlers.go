package handlers

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"Reelrank/middleware"
	"Reelrank/models"
	"Reelrank/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MovieStore is the persistence the handlers need
type MovieStore interface {
	ListRanked(ctx context.Context) ([]models.Movie, error)
	Get(ctx context.Context, id int) (*models.Movie, error)
	Create(ctx context.Context, m *models.Movie) error
	Update(ctx context.Context, id int, upd models.MovieUpdate) error
	Delete(ctx context.Context, id int) error
}

// MovieSearcher looks movies up in the external movie database
type MovieSearcher interface {
	SearchByTitle(ctx context.Context, title string) ([]services.SearchResult, error)
	FetchDetails(ctx context.Context, externalID int) (*services.MovieDetails, error)
}

type Handler struct {
	store        MovieStore
	searcher     MovieSearcher
	sessions     *services.SessionStore
	imageBaseURL string

	indexTmpl  *template.Template
	editTmpl   *template.Template
	addTmpl    *template.Template
	selectTmpl *template.Template
}

func New(store MovieStore, searcher MovieSearcher, sessions *services.SessionStore, imageBaseURL string) (*Handler, error) {
	h := &Handler{
		store:        store,
		searcher:     searcher,
		sessions:     sessions,
		imageBaseURL: imageBaseURL,
	}

	pages := map[string]**template.Template{
		"index":  &h.indexTmpl,
		"edit":   &h.editTmpl,
		"add":    &h.addTmpl,
		"select": &h.selectTmpl,
	}
	for name, dst := range pages {
		tmpl, err := LoadTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s page: %w", name, err)
		}
		*dst = tmpl
	}

	return h, nil
}

// Routes builds the router with the global middleware stack
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CSRF(h.sessions))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Home)
	r.Get("/edit", h.Edit)
	r.Post("/edit", h.Edit)
	r.Get("/delete", h.Delete)
	r.Post("/delete", h.Delete)
	r.Get("/add", h.Add)
	r.Post("/add", h.Add)
	r.Get("/find", h.Find)

	return r
}
