// Package model defines the typed domain records shared by the repository
// and handler layers. Each struct corresponds to a table; json tags are
// declared where a record is serialized directly in API responses.
package model

import "time"

// Genre categorizes movies. Names are unique across the catalog.
type Genre struct {
	ID        uint64    `json:"id"`         // genres.id
	Name      string    `json:"name"`       // genres.name (unique)
	CreatedAt time.Time `json:"created_at"` // genres.created_at
	UpdatedAt time.Time `json:"updated_at"` // genres.updated_at
}

// Movie is a film available for scheduling. Inactive movies are kept for
// historical orders but excluded from public browsing.
type Movie struct {
	ID          uint64    `json:"id"`           // movies.id
	GenreID     uint64    `json:"genre_id"`     // movies.genre_id
	Title       string    `json:"title"`        // movies.title
	Synopsis    *string   `json:"synopsis"`     // movies.synopsis (nullable)
	DurationMin uint32    `json:"duration_min"` // movies.duration_min
	PosterURL   *string   `json:"poster_url"`   // movies.poster_url (nullable)
	IsActive    bool      `json:"is_active"`    // movies.is_active
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Cinema is a venue containing screening rooms.
type Cinema struct {
	ID        uint64    `json:"id"`      // cinemas.id
	Name      string    `json:"name"`    // cinemas.name
	City      string    `json:"city"`    // cinemas.city
	Address   string    `json:"address"` // cinemas.address
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a concession item that can be attached to an order during
// checkout (popcorn, drinks and so on).
type Product struct {
	ID          uint64    `json:"id"`          // products.id
	Name        string    `json:"name"`        // products.name
	Description *string   `json:"description"` // products.description (nullable)
	Price       float64   `json:"price"`       // products.price
	IsActive    bool      `json:"is_active"`   // products.is_active
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
