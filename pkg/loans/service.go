package loans

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kashidashi/kashidashi/pkg/errcodes"
	"github.com/kashidashi/kashidashi/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveLoanOptions struct {
	ID *int
}

type ListLoansOptions struct {
	Limit      *int
	Offset     *int
	MemberID   *int
	BookID     *int
	IsReturned *bool

	includeTotal bool
}

type ListOverdueLoansOptions struct {
	// AsOf is the reference date (YYYY-MM-DD). Defaults to today.
	AsOf string
}

type UpdateLoanOptions struct {
	Columns []string
}

// Service owns the loan lifecycle. Every operation that can change whether a
// book has an open loan performs its loan write and the matching
// books.available flip inside a single transaction, so the flag never
// disagrees with the loans table.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateLoan checks the book and member out of the store and, if the book is
// available and the member active, inserts the loan and marks the book
// unavailable. The checks run inside the same transaction as the writes so
// two concurrent requests can't both see the book as available.
func (svc *Service) CreateLoan(ctx context.Context, loan *models.Loan) error {
	now := time.Now()
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = now
	}
	loan.UpdatedAt = loan.CreatedAt

	if loan.LoanDate == "" {
		loan.LoanDate = now.Format(models.DateLayout)
	}
	if loan.DueDate == "" {
		loanDate, err := time.Parse(models.DateLayout, loan.LoanDate)
		if err != nil {
			return errcodes.ValidationError(`"loan_date" should be in the format of YYYY-MM-DD`)
		}
		loan.DueDate = loanDate.AddDate(0, 0, models.LoanPeriodDays).Format(models.DateLayout)
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &models.Book{}
		err := tx.NewSelect().Model(book).Where("b.id = ?", loan.BookID).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}
		if !book.Available {
			return errcodes.Conflict(fmt.Sprintf("Book %d is not available for loan.", loan.BookID))
		}

		member := &models.Member{}
		err = tx.NewSelect().Model(member).Where("m.id = ?", loan.MemberID).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Member")
			}
			return errors.WithStack(err)
		}
		if !member.Active {
			return errcodes.Conflict(fmt.Sprintf("Member %d is not active.", loan.MemberID))
		}

		_, err = tx.
			NewInsert().
			Model(loan).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return setBookAvailable(ctx, tx, loan.BookID, false, now)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) RetrieveLoan(ctx context.Context, opts RetrieveLoanOptions) (*models.Loan, error) {
	loan := &models.Loan{}

	q := svc.db.
		NewSelect().
		Model(loan).
		Relation("Book").
		Relation("Member")

	if opts.ID != nil {
		q = q.Where("l.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Loan")
		}
		return nil, errors.WithStack(err)
	}

	return loan, nil
}

func (svc *Service) ListLoans(ctx context.Context, opts ListLoansOptions) ([]*models.Loan, error) {
	l, _, err := svc.listLoansWithTotal(ctx, opts)
	return l, errors.WithStack(err)
}

func (svc *Service) ListLoansWithTotal(ctx context.Context, opts ListLoansOptions) ([]*models.Loan, int, error) {
	opts.includeTotal = true
	return svc.listLoansWithTotal(ctx, opts)
}

func (svc *Service) listLoansWithTotal(ctx context.Context, opts ListLoansOptions) ([]*models.Loan, int, error) {
	loans := []*models.Loan{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&loans).
		Relation("Book").
		Relation("Member").
		Order("l.id ASC")

	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}
	if opts.MemberID != nil {
		q = q.Where("l.member_id = ?", *opts.MemberID)
	}
	if opts.BookID != nil {
		q = q.Where("l.book_id = ?", *opts.BookID)
	}
	if opts.IsReturned != nil {
		if *opts.IsReturned {
			q = q.Where("l.return_date IS NOT NULL")
		} else {
			q = q.Where("l.return_date IS NULL")
		}
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return loans, total, nil
}

// ListOverdueLoans returns open loans whose due date is before the reference
// date, oldest due date first.
func (svc *Service) ListOverdueLoans(ctx context.Context, opts ListOverdueLoansOptions) ([]*models.Loan, error) {
	asOf := opts.AsOf
	if asOf == "" {
		asOf = time.Now().Format(models.DateLayout)
	}

	loans := []*models.Loan{}

	err := svc.db.
		NewSelect().
		Model(&loans).
		Relation("Book").
		Relation("Member").
		Where("l.due_date < ?", asOf).
		Where("l.return_date IS NULL").
		Order("l.due_date ASC", "l.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return loans, nil
}

// UpdateLoan applies the given columns. When the update sets a return date on
// a loan that is currently open, the book becomes available again in the same
// transaction. Setting a return date on an already-closed loan only rewrites
// the field; the book's flag is left alone.
func (svc *Service) UpdateLoan(ctx context.Context, loan *models.Loan, opts UpdateLoanOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	settingReturnDate := false
	for _, col := range opts.Columns {
		if col == "return_date" {
			settingReturnDate = true
		}
	}

	// Update updated_at.
	now := time.Now()
	loan.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Re-read the stored row so the open/closed decision can't drift
		// from stored truth.
		stored := &models.Loan{}
		err := tx.NewSelect().Model(stored).Where("l.id = ?", loan.ID).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Loan")
			}
			return errors.WithStack(err)
		}

		closing := settingReturnDate && loan.ReturnDate != nil && stored.IsOpen()

		_, err = tx.
			NewUpdate().
			Model(loan).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if closing {
			return setBookAvailable(ctx, tx, stored.BookID, true, now)
		}
		return nil
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// DeleteLoan removes the loan outright. Deleting an open loan puts the book
// back in circulation; deleting a closed one leaves the book's flag alone.
func (svc *Service) DeleteLoan(ctx context.Context, id int) (*models.Loan, error) {
	loan := &models.Loan{}
	now := time.Now()

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(loan).Where("l.id = ?", id).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Loan")
			}
			return errors.WithStack(err)
		}

		if loan.IsOpen() {
			if err := setBookAvailable(ctx, tx, loan.BookID, true, now); err != nil {
				return err
			}
		}

		_, err = tx.
			NewDelete().
			Model(loan).
			WherePK().
			Exec(ctx)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return loan, nil
}

func setBookAvailable(ctx context.Context, tx bun.Tx, bookID int, available bool, now time.Time) error {
	_, err := tx.
		NewUpdate().
		Model((*models.Book)(nil)).
		Set("available = ?", available).
		Set("updated_at = ?", now).
		Where("id = ?", bookID).
		Exec(ctx)
	return errors.WithStack(err)
}
