package export

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	exportService *Service
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := ExportPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.exportService.Export(ctx, params.Path); err != nil {
		return errors.WithStack(err)
	}

	response := map[string]interface{}{
		"path": params.Path,
	}
	return errors.WithStack(c.JSON(http.StatusCreated, response))
}
