package movie

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service exposes catalog operations.
type Service struct {
	repo Repository
}

// NewService builds a catalog service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to add a catalog entry.
type CreateInput struct {
	Title       string
	Description string
	Genre       Genre
	Director    Director
}

// Create adds a movie to the catalog. Titles are unique.
func (s *Service) Create(ctx context.Context, input CreateInput) (Movie, error) {
	if input.Title == "" {
		return Movie{}, errors.New("title is required")
	}
	if _, err := s.repo.FindByTitle(ctx, input.Title); err == nil {
		return Movie{}, errors.New("movie already exists")
	}

	m := Movie{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Director:    input.Director,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Movie{}, err
	}
	return m, nil
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]Movie, error) {
	return s.repo.List(ctx)
}

// Get fetches a movie by identifier.
func (s *Service) Get(ctx context.Context, id string) (Movie, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByTitle fetches a movie by exact title.
func (s *Service) GetByTitle(ctx context.Context, title string) (Movie, error) {
	return s.repo.FindByTitle(ctx, title)
}

// GenreByName returns the genre details of the first movie carrying it.
func (s *Service) GenreByName(ctx context.Context, name string) (Genre, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return Genre{}, err
	}
	for _, m := range movies {
		if m.Genre.Name == name {
			return m.Genre, nil
		}
	}
	return Genre{}, ErrNotFound
}

// DirectorByName returns the director details of the first movie carrying them.
func (s *Service) DirectorByName(ctx context.Context, name string) (Director, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return Director{}, err
	}
	for _, m := range movies {
		if m.Director.Name == name {
			return m.Director, nil
		}
	}
	return Director{}, ErrNotFound
}
