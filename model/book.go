// model/book.go
package model

import "time"

type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Description     string    `json:"description"`
	Genre           string    `json:"genre"`
	PublishedYear   int       `json:"published_year"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateBookReq represents the admin catalog-create payload
// swagger:model CreateBookReq
type CreateBookReq struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	ISBN          string `json:"isbn" validate:"required"`
	Description   string `json:"description"`
	Genre         string `json:"genre" validate:"required"`
	PublishedYear int    `json:"published_year" validate:"required,gt=0"`
	TotalCopies   int    `json:"total_copies" validate:"required,gte=1"`
}

// UpdateBookReq carries partial catalog updates; nil fields are left as-is.
// swagger:model UpdateBookReq
type UpdateBookReq struct {
	Title         *string `json:"title,omitempty"`
	Author        *string `json:"author,omitempty"`
	ISBN          *string `json:"isbn,omitempty" validate:"omitempty,min=1"`
	Description   *string `json:"description,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	PublishedYear *int    `json:"published_year,omitempty" validate:"omitempty,gt=0"`
	TotalCopies   *int    `json:"total_copies,omitempty" validate:"omitempty,gte=1"`
}
