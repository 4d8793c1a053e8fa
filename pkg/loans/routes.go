package loans

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	loanService := NewService(db)

	h := &handler{
		loanService: loanService,
	}

	e.POST("/loans", h.create)
	e.GET("/loans", h.list)
	e.GET("/loans/overdue", h.listOverdue)
	e.GET("/loans/:id", h.retrieve)
	e.PUT("/loans/:id", h.update)
	e.DELETE("/loans/:id", h.delete)
}
