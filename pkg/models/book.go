package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              int       `bun:",pk,nullzero" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Title           string    `bun:",nullzero" json:"title"`
	Author          string    `bun:",nullzero" json:"author"`
	ISBN            string    `bun:"isbn,nullzero" json:"isbn"`
	PublicationYear *int      `json:"publication_year"`
	Genre           *string   `json:"genre"`
	Description     *string   `json:"description"`
	Available       bool      `json:"available"`
	Loans           []*Loan   `bun:"rel:has-many,join:id=book_id" json:"loans,omitempty"`
}
