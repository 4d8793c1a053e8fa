package members

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	memberService := NewService(db)

	h := &handler{
		memberService: memberService,
	}

	e.POST("/members", h.create)
	e.GET("/members", h.list)
	e.GET("/members/:id", h.retrieve)
	e.PUT("/members/:id", h.update)
	e.DELETE("/members/:id", h.delete)
}
