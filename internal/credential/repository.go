package credential

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// ErrNotFound is returned when no user matches the requested username.
var ErrNotFound = errors.New("user not found")

// ErrUserExists is returned when registering an already-taken username.
var ErrUserExists = errors.New("username already taken")

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) error
	RemoveFavorite(ctx context.Context, username, movieID string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user row.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (username, password_hash, email, birthday, created_at)
        VALUES ($1, $2, $3, $4, $5)`, user.Username, user.PasswordHash, user.Email, user.Birthday, user.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrUserExists
	}
	return err
}

// FindByUsername fetches a user and their favorite movie IDs.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT username, password_hash, email, birthday, created_at
        FROM users WHERE username = $1`, username)
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.Username, &user.PasswordHash, &user.Email, &user.Birthday, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()

	rows, err := r.db.Query(ctx, `SELECT movie_id FROM user_favorites WHERE username = $1`, username)
	if err != nil {
		return User{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var movieID string
		if err := rows.Scan(&movieID); err != nil {
			return User{}, err
		}
		user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	}
	return user, rows.Err()
}

// Update rewrites the mutable columns of a user row.
func (r *PostgresRepository) Update(ctx context.Context, user User) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, email = $2, birthday = $3
        WHERE username = $4`, user.PasswordHash, user.Email, user.Birthday, user.Username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user and their favorites.
func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_favorites WHERE username = $1`, username); err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFavorite links a movie to a user. Adding the same movie twice is a no-op.
func (r *PostgresRepository) AddFavorite(ctx context.Context, username, movieID string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO user_favorites (username, movie_id)
        VALUES ($1, $2) ON CONFLICT DO NOTHING`, username, movieID)
	return err
}

// RemoveFavorite unlinks a movie from a user.
func (r *PostgresRepository) RemoveFavorite(ctx context.Context, username, movieID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_favorites WHERE username = $1 AND movie_id = $2`, username, movieID)
	return err
}
