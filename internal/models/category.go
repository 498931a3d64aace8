package models

import (
	"time"
)

// Category represents a post category. Names are not unique.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryInput is the request body for creating or updating a category
type CategoryInput struct {
	Name string `json:"name"`
}
