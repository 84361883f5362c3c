package export

import (
	"github.com/inkshelf/inkshelf/pkg/catalog"
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the export route.
func RegisterRoutes(e *echo.Echo, db *bun.DB, thumbs *thumbnails.Store) {
	h := &handler{
		exportService: NewService(catalog.NewService(db, thumbs), thumbs),
	}

	e.POST("/exports", h.create)
}
