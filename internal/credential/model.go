package credential

import "time"

// User represents a registered account. The password hash never leaves the
// process: it is excluded from JSON serialization and only the Verify path
// reads it.
type User struct {
	Username       string     `json:"username"`
	PasswordHash   []byte     `json:"-"`
	Email          string     `json:"email"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	FavoriteMovies []string   `json:"favorite_movies"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Credentials carries one login attempt.
type Credentials struct {
	Username string
	Password string
}
