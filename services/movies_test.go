package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"Reelrank/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var movieCols = []string{"id", "title", "year", "description", "rating", "ranking", "review", "img_url", "created_at", "updated_at"}

func newMockStore(t *testing.T) (*MovieStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewMovieStore(db), mock
}

func movieRow(rows *sqlmock.Rows, id int, title string, rating float64, ranking int, review any) *sqlmock.Rows {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return rows.AddRow(id, title, 2010, "A description", rating, ranking, review, "https://image.tmdb.org/t/p/w500/p.jpg", now, now)
}

func TestMovieStore_ListAll(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(movieCols)
	movieRow(rows, 2, "B", 9.5, 1, "Loved it")
	movieRow(rows, 1, "A", 8.0, 2, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM movies ORDER BY rating DESC, id ASC")).WillReturnRows(rows)

	movies, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, "B", movies[0].Title)
	require.NotNil(t, movies[0].Review)
	assert.Equal(t, "Loved it", *movies[0].Review)
	assert.Equal(t, "A", movies[1].Title)
	assert.Nil(t, movies[1].Review)
	assert.Equal(t, "", movies[1].ReviewText())
}

func TestMovieStore_ListAll_Empty(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("FROM movies").WillReturnRows(sqlmock.NewRows(movieCols))

	movies, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestMovieStore_Get(t *testing.T) {
	store, mock := newMockStore(t)

	rows := movieRow(sqlmock.NewRows(movieCols), 7, "Inception", 8.8, 1, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM movies WHERE id = $1")).WithArgs(7).WillReturnRows(rows)

	m, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, m.ID)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, 8.8, m.Rating)
}

func TestMovieStore_Get_NotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("FROM movies WHERE id").WithArgs(42).WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieStore_Create(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO movies")).
		WithArgs("Inception", 2010, "Dreams", 0.0, 1, sql.NullString{}, "https://img/p.jpg").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(5, now, now))

	m := &models.Movie{Title: "Inception", Year: 2010, Description: "Dreams", Ranking: 1, ImgURL: "https://img/p.jpg"}
	require.NoError(t, store.Create(context.Background(), m))
	assert.Equal(t, 5, m.ID)
}

func TestMovieStore_Create_DuplicateTitle(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO movies").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := store.Create(context.Background(), &models.Movie{Title: "Inception"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMovieStore_Create_OtherError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("INSERT INTO movies").WillReturnError(errors.New("connection reset"))

	err := store.Create(context.Background(), &models.Movie{Title: "Heat"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestMovieStore_Update(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET rating = $1, review = $2")).
		WithArgs(7.5, sql.NullString{String: "Great", Valid: true}, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Update(context.Background(), 3, models.MovieUpdate{Rating: 7.5, Review: "Great"})
	assert.NoError(t, err)
}

func TestMovieStore_Update_EmptyReviewIsNull(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE movies SET rating").
		WithArgs(6.0, sql.NullString{}, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Update(context.Background(), 3, models.MovieUpdate{Rating: 6}))
}

func TestMovieStore_Update_NotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE movies SET rating").WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Update(context.Background(), 99, models.MovieUpdate{Rating: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieStore_Delete(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movies WHERE id = $1")).WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Delete(context.Background(), 3))
}

func TestMovieStore_DeleteThenGet(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM movies").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM movies WHERE id").WithArgs(3).WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("DELETE FROM movies").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), 3))

	_, err := store.Get(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieStore_Count(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM movies")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
