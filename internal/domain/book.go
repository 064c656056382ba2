package domain

import "time"

type Book struct {
	ID              int32     `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	CategoryID      *int32    `json:"category_id,omitempty"`
	TotalCopies     int32     `json:"total_copies"`
	AvailableCopies int32     `json:"available_copies"`
	PublicationYear *int32    `json:"publication_year,omitempty"`
	Description     string    `json:"description"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type Category struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
