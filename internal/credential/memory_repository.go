package credential

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for development and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return ErrUserExists
	}
	r.users[user.Username] = user
	return nil
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return User{}, ErrNotFound
	}
	user.FavoriteMovies = append([]string(nil), user.FavoriteMovies...)
	return user, nil
}

func (r *memoryRepository) Update(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.Username]
	if !ok {
		return ErrNotFound
	}
	user.FavoriteMovies = stored.FavoriteMovies
	user.CreatedAt = stored.CreatedAt
	r.users[user.Username] = user
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *memoryRepository) AddFavorite(_ context.Context, username, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return ErrNotFound
	}
	for _, id := range user.FavoriteMovies {
		if id == movieID {
			return nil
		}
	}
	user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	r.users[username] = user
	return nil
}

func (r *memoryRepository) RemoveFavorite(_ context.Context, username, movieID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return ErrNotFound
	}
	kept := user.FavoriteMovies[:0]
	for _, id := range user.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	user.FavoriteMovies = kept
	r.users[username] = user
	return nil
}
