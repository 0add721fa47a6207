package movie

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no catalog entry matches the query.
var ErrNotFound = errors.New("movie not found")

// Repository persists catalog entries.
type Repository interface {
	Create(ctx context.Context, m Movie) error
	List(ctx context.Context) ([]Movie, error)
	FindByID(ctx context.Context, id string) (Movie, error)
	FindByTitle(ctx context.Context, title string) (Movie, error)
}

// PostgresRepository stores movies in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const movieColumns = `id, title, description, genre_name, genre_description, director_name, director_bio, created_at`

// Create inserts a catalog entry.
func (r *PostgresRepository) Create(ctx context.Context, m Movie) error {
	movieID, err := uuid.Parse(m.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO movies (`+movieColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		movieID, m.Title, m.Description, m.Genre.Name, m.Genre.Description,
		m.Director.Name, m.Director.Bio, m.CreatedAt.UTC())
	return err
}

// List returns the whole catalog ordered by title.
func (r *PostgresRepository) List(ctx context.Context) ([]Movie, error) {
	rows, err := r.db.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// FindByID fetches a catalog entry by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Movie, error) {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return Movie{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, movieID)
	return scanMovie(row)
}

// FindByTitle fetches a catalog entry by exact title.
func (r *PostgresRepository) FindByTitle(ctx context.Context, title string) (Movie, error) {
	row := r.db.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE title = $1`, title)
	return scanMovie(row)
}

func scanMovie(row pgx.Row) (Movie, error) {
	var (
		m         Movie
		movieID   uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&movieID, &m.Title, &m.Description, &m.Genre.Name, &m.Genre.Description,
		&m.Director.Name, &m.Director.Bio, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Movie{}, ErrNotFound
		}
		return Movie{}, err
	}
	m.ID = movieID.String()
	m.CreatedAt = createdAt.UTC()
	return m, nil
}
