package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"

	"github.com/inkshelf/inkshelf/pkg/binder"
	"github.com/inkshelf/inkshelf/pkg/catalog"
	"github.com/inkshelf/inkshelf/pkg/config"
	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/inkshelf/inkshelf/pkg/export"
	"github.com/inkshelf/inkshelf/pkg/importer"
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	thumbs := thumbnails.NewStore(cfg.DataDirectory)

	catalog.RegisterRoutes(e, db, thumbs)
	importer.RegisterRoutes(e, db, cfg, thumbs)
	export.RegisterRoutes(e, db, thumbs)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
