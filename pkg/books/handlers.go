package books

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kashidashi/kashidashi/pkg/errcodes"
	"github.com/kashidashi/kashidashi/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// The ISBN is unique across the catalog.
	_, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ISBN: &params.ISBN})
	if err == nil {
		return errcodes.Conflict(fmt.Sprintf("Book with ISBN %s already exists.", params.ISBN))
	}
	if !errors.Is(err, errcodes.NotFound("Book")) {
		return errors.WithStack(err)
	}

	available := true
	if params.Available != nil {
		available = *params.Available
	}

	book := &models.Book{
		Title:           params.Title,
		Author:          params.Author,
		ISBN:            params.ISBN,
		PublicationYear: params.PublicationYear,
		Genre:           params.Genre,
		Description:     params.Description,
		Available:       available,
	}

	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		Limit:     &params.Limit,
		Offset:    &params.Skip,
		Title:     params.Title,
		Author:    params.Author,
		Available: params.Available,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the book.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateBookOptions{Columns: []string{}}

	if params.Title != nil && *params.Title != book.Title {
		book.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Author != nil && *params.Author != book.Author {
		book.Author = *params.Author
		opts.Columns = append(opts.Columns, "author")
	}
	if params.ISBN != nil && *params.ISBN != book.ISBN {
		// The new ISBN can't collide with another book.
		_, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{ISBN: params.ISBN})
		if err == nil {
			return errcodes.Conflict(fmt.Sprintf("Book with ISBN %s already exists.", *params.ISBN))
		}
		if !errors.Is(err, errcodes.NotFound("Book")) {
			return errors.WithStack(err)
		}
		book.ISBN = *params.ISBN
		opts.Columns = append(opts.Columns, "isbn")
	}
	if params.PublicationYear != nil {
		book.PublicationYear = params.PublicationYear
		opts.Columns = append(opts.Columns, "publication_year")
	}
	if params.Genre != nil {
		book.Genre = params.Genre
		opts.Columns = append(opts.Columns, "genre")
	}
	if params.Description != nil {
		book.Description = params.Description
		opts.Columns = append(opts.Columns, "description")
	}
	if params.Available != nil && *params.Available != book.Available {
		book.Available = *params.Available
		opts.Columns = append(opts.Columns, "available")
	}

	// Update the model.
	err = h.bookService.UpdateBook(ctx, book, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	book, err = h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.DeleteBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}
