package books

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
	}

	e.POST("/books", h.create)
	e.GET("/books", h.list)
	e.GET("/books/:id", h.retrieve)
	e.PUT("/books/:id", h.update)
	e.DELETE("/books/:id", h.delete)
}
