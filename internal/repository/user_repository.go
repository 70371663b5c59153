package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-blog-api/internal/model"
)

// ErrUsernameExists is returned by Create when the username is already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrUserNotFound is returned by lookups when no matching user exists.
var ErrUserNotFound = errors.New("user not found")

// UserRepo persists user credentials in the `users` table. Uniqueness of
// usernames is enforced by a UNIQUE index on users.username, so a plain
// insert is the whole registration write path: there is no separate
// existence check that could race with a concurrent insert.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an already-hashed password and returns its ID.
// A duplicate-key violation (MySQL error 1062) maps to ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (uint64, error) {
	username = strings.TrimSpace(username)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?,?)",
		username, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}
