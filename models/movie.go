package models

import "time"

// Column bounds for the movies table
const (
	MaxTitleLength       = 250
	MaxDescriptionLength = 500
	MaxReviewLength      = 250
	MaxImgURLLength      = 250
)

type Movie struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Rating      float64   `json:"rating"`
	Ranking     int       `json:"ranking"`
	Review      *string   `json:"review,omitempty"` // nil until the movie is rated
	ImgURL      string    `json:"img_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReviewText returns the review or an empty string when none was written
func (m Movie) ReviewText() string {
	if m.Review == nil {
		return ""
	}
	return *m.Review
}

// MovieUpdate carries the user-editable fields of a movie
type MovieUpdate struct {
	Rating float64
	Review string
}
