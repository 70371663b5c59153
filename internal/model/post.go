package model

import "time"

// Post mirrors a row of the `blog_posts` table: a blog entry about a movie.
// Title and Content are required; the movie metadata columns default to the
// empty string in the schema.
type Post struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	MovieTitle  string    `json:"movie_title"`
	ReleaseDate string    `json:"release_date"` // YYYY-MM-DD, free-form in the DB
	Director    string    `json:"director"`
	Genre       string    `json:"genre"`
	CreatedAt   time.Time `json:"created_at"`
}
