package models

import "time"

const (
	MediaBook      = "book"
	MediaAudiobook = "audiobook"
)

type Book struct {
	ID         string
	UserID     string
	Title      string
	Author     string
	FinishDate time.Time
	Media      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookAttrs are the user-editable fields of a Book, validated before any
// insert or update.
type BookAttrs struct {
	Title      string    `validate:"required"`
	Author     string    `validate:"required"`
	FinishDate time.Time `validate:"required"`
	Media      string    `validate:"required,oneof=book audiobook"`
}

// YearCount is the number of books finished in a given year.
type YearCount struct {
	Year  int
	Count int
}
