package catalog

import (
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the book, identifier, group, and custom-field
// routes.
func RegisterRoutes(e *echo.Echo, db *bun.DB, thumbs *thumbnails.Store) {
	h := &handler{
		catalogService: NewService(db, thumbs),
	}

	g := e.Group("/books")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.retrieve)
	g.PUT("/:id", h.update)
	g.PUT("/:id/number", h.updateNumber)
	g.PUT("/:id/groups", h.updateGroups)
	g.POST("/:id/clone", h.clone)

	e.GET("/identifiers/:code/exists", h.identifierExists)
	e.GET("/identifiers/:code/comic", h.findComicByEAN)
	e.GET("/groups", h.listGroups)
	e.GET("/custom-fields", h.listCustomFields)
}
