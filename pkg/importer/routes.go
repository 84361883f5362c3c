package importer

import (
	"github.com/inkshelf/inkshelf/pkg/catalog"
	"github.com/inkshelf/inkshelf/pkg/config"
	"github.com/inkshelf/inkshelf/pkg/googlebooks"
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers the import route.
func RegisterRoutes(e *echo.Echo, db *bun.DB, cfg *config.Config, thumbs *thumbnails.Store) {
	catalogService := catalog.NewService(db, thumbs)
	client := googlebooks.NewClient(cfg.GoogleBooksBaseURL, cfg.GoogleBooksAPIKey)

	h := &handler{
		importService: NewService(cfg, catalogService, client, thumbs),
	}

	e.POST("/imports", h.create)
}
