package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Reelrank/models"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const movieColumns = `id, title, year, description, rating, ranking, review, img_url, created_at, updated_at`

// MovieStore persists movies in the movies table
type MovieStore struct {
	db *sql.DB
}

func NewMovieStore(db *sql.DB) *MovieStore {
	return &MovieStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (models.Movie, error) {
	var m models.Movie
	var review sql.NullString
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.Description, &m.Rating, &m.Ranking, &review, &m.ImgURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}
	if review.Valid {
		m.Review = &review.String
	}
	return m, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listMovies(ctx context.Context, q queryer) ([]models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY rating DESC, id ASC`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// ListAll returns every movie, highest rating first
func (s *MovieStore) ListAll(ctx context.Context) ([]models.Movie, error) {
	return listMovies(ctx, s.db)
}

func (s *MovieStore) Get(ctx context.Context, id int) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	m, err := scanMovie(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return &m, nil
}

// Create inserts the movie and fills in its generated id and timestamps.
// A duplicate title yields ErrConflict.
func (s *MovieStore) Create(ctx context.Context, m *models.Movie) error {
	query := `
		INSERT INTO movies (title, year, description, rating, ranking, review, img_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`
	var review sql.NullString
	if m.Review != nil {
		review = sql.NullString{String: *m.Review, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query, m.Title, m.Year, m.Description, m.Rating, m.Ranking, review, m.ImgURL).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%q: %w", m.Title, ErrConflict)
		}
		return fmt.Errorf("failed to create movie: %w", err)
	}
	return nil
}

// Update sets the rating and review. An empty review is stored as NULL.
func (s *MovieStore) Update(ctx context.Context, id int, upd models.MovieUpdate) error {
	review := sql.NullString{String: upd.Review, Valid: upd.Review != ""}
	query := `UPDATE movies SET rating = $1, review = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`
	res, err := s.db.ExecContext(ctx, query, upd.Rating, review, id)
	if err != nil {
		return fmt.Errorf("failed to update movie %d: %w", id, err)
	}
	return expectOneRow(res, id)
}

func (s *MovieStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie %d: %w", id, err)
	}
	return expectOneRow(res, id)
}

func (s *MovieStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}

func expectOneRow(res sql.Result, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
