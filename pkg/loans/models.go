package loans

import (
	"github.com/kashidashi/kashidashi/pkg/models"
)

const (
	unknownBookTitle  = "Unknown Book"
	unknownMemberName = "Unknown Member"
)

// LoanDetail is the loan response shape: the loan's own fields plus the book
// title and member name joined in for display.
type LoanDetail struct {
	models.Loan
	BookTitle  string `json:"book_title"`
	MemberName string `json:"member_name"`
}

func newLoanDetail(loan *models.Loan) *LoanDetail {
	detail := &LoanDetail{
		Loan:       *loan,
		BookTitle:  unknownBookTitle,
		MemberName: unknownMemberName,
	}
	if loan.Book != nil {
		detail.BookTitle = loan.Book.Title
	}
	if loan.Member != nil {
		detail.MemberName = loan.Member.FullName()
	}
	detail.Book = nil
	detail.Member = nil
	return detail
}

func newLoanDetails(loans []*models.Loan) []*LoanDetail {
	details := make([]*LoanDetail, 0, len(loans))
	for _, loan := range loans {
		details = append(details, newLoanDetail(loan))
	}
	return details
}
