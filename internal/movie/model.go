package movie

import "time"

// Genre describes a movie genre.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Director describes a movie director.
type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Movie is a catalog entry.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       Genre     `json:"genre"`
	Director    Director  `json:"director"`
	CreatedAt   time.Time `json:"created_at"`
}
