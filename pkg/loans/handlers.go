package loans

import (
	"net/http"
	"strconv"

	"github.com/kashidashi/kashidashi/pkg/errcodes"
	"github.com/kashidashi/kashidashi/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	loanService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateLoanPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	loan := &models.Loan{
		BookID:   params.BookID,
		MemberID: params.MemberID,
		LoanDate: params.LoanDate,
		DueDate:  params.DueDate,
	}

	if err := h.loanService.CreateLoan(ctx, loan); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, loan))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Loan")
	}

	loan, err := h.loanService.RetrieveLoan(ctx, RetrieveLoanOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newLoanDetail(loan)))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListLoansQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	loans, err := h.loanService.ListLoans(ctx, ListLoansOptions{
		Limit:      &params.Limit,
		Offset:     &params.Skip,
		MemberID:   params.MemberID,
		BookID:     params.BookID,
		IsReturned: params.IsReturned,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newLoanDetails(loans)))
}

func (h *handler) listOverdue(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListOverdueLoansQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	loans, err := h.loanService.ListOverdueLoans(ctx, ListOverdueLoansOptions{
		AsOf: params.CurrentDate,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newLoanDetails(loans)))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Loan")
	}

	// Bind params.
	params := UpdateLoanPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the loan.
	loan, err := h.loanService.RetrieveLoan(ctx, RetrieveLoanOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateLoanOptions{Columns: []string{}}

	if params.ReturnDate != nil {
		loan.ReturnDate = params.ReturnDate
		opts.Columns = append(opts.Columns, "return_date")
	}

	// Update the model.
	err = h.loanService.UpdateLoan(ctx, loan, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	loan, err = h.loanService.RetrieveLoan(ctx, RetrieveLoanOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, newLoanDetail(loan)))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Loan")
	}

	loan, err := h.loanService.DeleteLoan(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, loan))
}
