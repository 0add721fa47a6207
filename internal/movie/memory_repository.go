package movie

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	movies map[string]Movie
}

// NewMemoryRepository builds an in-memory catalog for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{movies: make(map[string]Movie)}
}

func (r *memoryRepository) Create(_ context.Context, m Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies[m.ID] = m
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	movies := make([]Movie, 0, len(r.movies))
	for _, m := range r.movies {
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })
	return movies, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	if !ok {
		return Movie{}, ErrNotFound
	}
	return m, nil
}

func (r *memoryRepository) FindByTitle(_ context.Context, title string) (Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.movies {
		if m.Title == title {
			return m, nil
		}
	}
	return Movie{}, ErrNotFound
}
