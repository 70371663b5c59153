// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for the blog_posts table. Each method
// is a single statement against the database, so no explicit locking or
// multi-statement transactions are needed.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-blog-api/internal/model"
)

// ErrPostNotFound is returned when a post cannot be found in the DB.
var ErrPostNotFound = errors.New("post not found")

// PostRepo encapsulates all database queries related to blog posts.
type PostRepo struct {
	db *sql.DB
}

// NewPostRepo constructs a PostRepo with the provided DB handle. This allows
// dependency injection of the database in tests and at startup.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

const postColumns = "id, title, content, movie_title, release_date, director, genre, created_at"

// List returns all posts ordered by id.
func (r *PostRepo) List(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+postColumns+" FROM blog_posts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Post
	for rows.Next() {
		p := new(model.Post)
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.MovieTitle,
			&p.ReleaseDate, &p.Director, &p.Genre, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a post by its ID. It returns ErrPostNotFound if no row
// matches.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	var p model.Post
	err := r.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM blog_posts WHERE id = ?", id).
		Scan(&p.ID, &p.Title, &p.Content, &p.MovieTitle,
			&p.ReleaseDate, &p.Director, &p.Genre, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post. On success the post's ID and CreatedAt fields
// are populated from the stored row.
func (r *PostRepo) Create(ctx context.Context, p *model.Post) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO blog_posts (title, content, movie_title, release_date, director, genre)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Content, p.MovieTitle, p.ReleaseDate, p.Director, p.Genre)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	// Follow-up SELECT populates the DB-assigned created_at.
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM blog_posts WHERE id = ?", p.ID).Scan(&p.CreatedAt)
}

// Update rewrites all mutable columns of the post identified by p.ID. It
// returns ErrPostNotFound when the post does not exist.
func (r *PostRepo) Update(ctx context.Context, p *model.Post) error {
	var exists uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM blog_posts WHERE id = ?", p.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE blog_posts
		 SET title = ?, content = ?, movie_title = ?, release_date = ?, director = ?, genre = ?
		 WHERE id = ?`,
		p.Title, p.Content, p.MovieTitle, p.ReleaseDate, p.Director, p.Genre, p.ID)
	return err
}

// Delete removes a post by id. It returns ErrPostNotFound when no row was
// deleted.
func (r *PostRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPostNotFound
	}
	return nil
}
