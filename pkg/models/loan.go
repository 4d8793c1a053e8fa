package models

import (
	"time"

	"github.com/uptrace/bun"
)

// DateLayout is the wire and storage format for calendar dates. Dates are
// stored as TEXT, which keeps lexicographic order equal to date order.
const DateLayout = "2006-01-02"

// LoanPeriodDays is how long a member can keep a book before it's overdue.
const LoanPeriodDays = 14

type Loan struct {
	bun.BaseModel `bun:"table:loans,alias:l"`

	ID         int       `bun:",pk,nullzero" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	BookID     int       `bun:",nullzero" json:"book_id"`
	Book       *Book     `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
	MemberID   int       `bun:",nullzero" json:"member_id"`
	Member     *Member   `bun:"rel:belongs-to,join:member_id=id" json:"member,omitempty"`
	LoanDate   string    `bun:",nullzero" json:"loan_date"`
	DueDate    string    `bun:",nullzero" json:"due_date"`
	ReturnDate *string   `json:"return_date"`
}

// IsOpen reports whether the book is still out on this loan.
func (l *Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// IsOverdue reports whether the loan is open and past due as of the given
// date.
func (l *Loan) IsOverdue(asOf string) bool {
	return l.IsOpen() && l.DueDate < asOf
}
