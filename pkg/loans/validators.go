package loans

type CreateLoanPayload struct {
	BookID   int    `json:"book_id" validate:"required,min=1"`
	MemberID int    `json:"member_id" validate:"required,min=1"`
	LoanDate string `json:"loan_date,omitempty" validate:"date"`
	DueDate  string `json:"due_date,omitempty" validate:"date"`
}

type ListLoansQuery struct {
	Limit      int   `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=500"`
	Skip       int   `query:"skip" json:"skip,omitempty" validate:"min=0"`
	MemberID   *int  `query:"member_id" json:"member_id,omitempty" validate:"omitempty,min=1"`
	BookID     *int  `query:"book_id" json:"book_id,omitempty" validate:"omitempty,min=1"`
	IsReturned *bool `query:"is_returned" json:"is_returned,omitempty"`
}

type ListOverdueLoansQuery struct {
	CurrentDate string `query:"current_date" json:"current_date,omitempty" validate:"date"`
}

type UpdateLoanPayload struct {
	ReturnDate *string `json:"return_date,omitempty" validate:"omitempty,date,ne="`
}
