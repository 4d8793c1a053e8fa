package books

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/kashidashi/kashidashi/pkg/config"
	"github.com/kashidashi/kashidashi/pkg/database"
	"github.com/kashidashi/kashidashi/pkg/errcodes"
	"github.com/kashidashi/kashidashi/pkg/migrations"
	"github.com/kashidashi/kashidashi/pkg/models"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// newTestDB goes through database.New so tests run against the same driver
// setup and pragmas as production.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	cfg := config.NewForTest()
	cfg.DatabaseFilePath = filepath.Join(t.TempDir(), "test.db")

	db, err := database.New(cfg)
	require.NoError(t, err)

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestServiceCreateBook(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &models.Book{
		Title:     "A Wizard of Earthsea",
		Author:    "Ursula K. Le Guin",
		ISBN:      "9780547773742",
		Available: true,
	}
	err := svc.CreateBook(ctx, book)
	require.NoError(t, err)

	assert.NotZero(t, book.ID)
	assert.False(t, book.CreatedAt.IsZero())
	assert.True(t, book.Available)
}

func TestServiceCreateBook_DuplicateISBN(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &models.Book{Title: "The Tombs of Atuan", Author: "Ursula K. Le Guin", ISBN: "9780547773743", Available: true}
	require.NoError(t, svc.CreateBook(ctx, book))

	dupe := &models.Book{Title: "The Farthest Shore", Author: "Ursula K. Le Guin", ISBN: "9780547773743", Available: true}
	err := svc.CreateBook(ctx, dupe)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestServiceRetrieveBook(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &models.Book{Title: "Tehanu", Author: "Ursula K. Le Guin", ISBN: "9780547773744", Available: true}
	require.NoError(t, svc.CreateBook(ctx, book))

	byID, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, book.Title, byID.Title)

	byISBN, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ISBN: &book.ISBN})
	require.NoError(t, err)
	assert.Equal(t, book.ID, byISBN.ID)
}

func TestServiceRetrieveBook_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: pointerutil.Int(999)})
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
	assert.Equal(t, "Book not found.", codeErr.Message)
}

func TestServiceListBooks_Filters(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	wizard := &models.Book{Title: "A Wizard of Earthsea", Author: "Ursula K. Le Guin", ISBN: "9780547773745", Available: true}
	require.NoError(t, svc.CreateBook(ctx, wizard))
	hobbit := &models.Book{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "9780547928227", Available: false}
	require.NoError(t, svc.CreateBook(ctx, hobbit))

	books, total, err := svc.ListBooksWithTotal(ctx, ListBooksOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, books, 2)
	assert.Equal(t, wizard.ID, books[0].ID)

	// Partial, case-preserving title match.
	books, err = svc.ListBooks(ctx, ListBooksOptions{Title: pointerutil.String("Wizard")})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, wizard.ID, books[0].ID)

	books, err = svc.ListBooks(ctx, ListBooksOptions{Author: pointerutil.String("Tolkien")})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, hobbit.ID, books[0].ID)

	available := true
	books, err = svc.ListBooks(ctx, ListBooksOptions{Available: &available})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, wizard.ID, books[0].ID)
}

func TestServiceListBooks_Pagination(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	ids := []int{}
	for i := 0; i < 5; i++ {
		book := &models.Book{
			Title:     fmt.Sprintf("Volume %d", i+1),
			Author:    "Anonymous",
			ISBN:      fmt.Sprintf("978054777400%d", i),
			Available: true,
		}
		require.NoError(t, svc.CreateBook(ctx, book))
		ids = append(ids, book.ID)
	}

	books, total, err := svc.ListBooksWithTotal(ctx, ListBooksOptions{
		Limit:  pointerutil.Int(2),
		Offset: pointerutil.Int(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, books, 2)
	assert.Equal(t, ids[2], books[0].ID)
	assert.Equal(t, ids[3], books[1].ID)
}

func TestServiceUpdateBook(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &models.Book{Title: "The Other Wind", Author: "Ursula K. Le Guin", ISBN: "9780547773746", Available: true}
	require.NoError(t, svc.CreateBook(ctx, book))

	book.Title = "The Other Wind (Revised)"
	book.Genre = pointerutil.String("Fantasy")
	err := svc.UpdateBook(ctx, book, UpdateBookOptions{Columns: []string{"title", "genre"}})
	require.NoError(t, err)

	stored, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, "The Other Wind (Revised)", stored.Title)
	require.NotNil(t, stored.Genre)
	assert.Equal(t, "Fantasy", *stored.Genre)
	// Untouched columns stay put.
	assert.Equal(t, "9780547773746", stored.ISBN)
}

func TestServiceUpdateBook_EmptyColumnsIsNoOp(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &models.Book{Title: "Tales from Earthsea", Author: "Ursula K. Le Guin", ISBN: "9780547773747", Available: true}
	require.NoError(t, svc.CreateBook(ctx, book))

	book.Title = "never written"
	err := svc.UpdateBook(ctx, book, UpdateBookOptions{})
	require.NoError(t, err)

	stored, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.NoError(t, err)
	assert.Equal(t, "Tales from Earthsea", stored.Title)
}

func TestServiceDeleteBook(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := &models.Book{Title: "The Word for World Is Forest", Author: "Ursula K. Le Guin", ISBN: "9780547773748", Available: true}
	require.NoError(t, svc.CreateBook(ctx, book))

	deleted, err := svc.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, deleted.ID)
	assert.Equal(t, book.Title, deleted.Title)

	_, err = svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &book.ID})
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}

func TestServiceDeleteBook_NotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.DeleteBook(ctx, 999)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "not_found", codeErr.Code)
}
