// Package place holds the locally stored places, their SQLite store and
// the merge of a stored place with its Wikipedia enrichment.
package place

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no place has the requested id.
	ErrNotFound = errors.New("place not found")
	// ErrInvalidID is returned when an id is not a valid UUID.
	ErrInvalidID = errors.New("invalid place id")
)

// Place is a stored point of interest.
type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
