package services

import (
	"context"
	"fmt"
	"sort"

	"Reelrank/models"
)

// RankMovies returns a copy of movies sorted by rating, highest first, with
// Ranking set to a dense 1-based position. Equal ratings keep their input
// order.
func RankMovies(movies []models.Movie) []models.Movie {
	ranked := make([]models.Movie, len(movies))
	copy(ranked, movies)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	for i := range ranked {
		ranked[i].Ranking = i + 1
	}
	return ranked
}

// ListRanked lists all movies, recomputes their ranking and persists it in
// one transaction. Only rows whose ranking moved are rewritten.
func (s *MovieStore) ListRanked(ctx context.Context) ([]models.Movie, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ranking transaction: %w", err)
	}
	defer tx.Rollback()

	movies, err := listMovies(ctx, tx)
	if err != nil {
		return nil, err
	}

	previous := make(map[int]int, len(movies))
	for _, m := range movies {
		previous[m.ID] = m.Ranking
	}

	ranked := RankMovies(movies)
	for _, m := range ranked {
		if previous[m.ID] == m.Ranking {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE movies SET ranking = $1 WHERE id = $2`, m.Ranking, m.ID); err != nil {
			return nil, fmt.Errorf("failed to update ranking of movie %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rankings: %w", err)
	}
	return ranked, nil
}
