package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID               int       `bun:",pk,nullzero" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	FirstName        string    `bun:",nullzero" json:"first_name"`
	LastName         string    `bun:",nullzero" json:"last_name"`
	Email            string    `bun:",nullzero" json:"email"`
	Phone            *string   `json:"phone"`
	Address          *string   `json:"address"`
	RegistrationDate string    `bun:",nullzero" json:"registration_date"`
	Active           bool      `json:"active"`
	Loans            []*Loan   `bun:"rel:has-many,join:id=member_id" json:"loans,omitempty"`
}

// FullName is the display name used in loan responses.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
