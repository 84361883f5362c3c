package catalog

import (
	"net/http"

	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	catalogService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if params.Search != nil {
		books, err := h.catalogService.FindBooksByTitle(ctx, *params.Search)
		if err != nil {
			return errors.WithStack(err)
		}
		response := map[string]interface{}{
			"books": books,
			"total": len(books),
		}
		return errors.WithStack(c.JSON(http.StatusOK, response))
	}

	entries, err := h.catalogService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]interface{}{
		"books": entries,
		"total": len(entries),
	}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	volumeID, err := h.catalogService.InsertBook(ctx, InsertBookParams{
		Title:         params.Title,
		Number:        params.Number,
		Authors:       params.Authors,
		Groups:        params.Groups,
		Publisher:     params.Publisher,
		PublishedDate: params.PublishedDate,
		Identifier:    params.Identifier,
		CustomFields:  params.CustomFields,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	book, err := h.catalogService.RetrieveBook(ctx, volumeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.catalogService.RetrieveBook(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	volumeID := c.Param("id")

	params := UpdateBookBody{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Confirm the row exists so a bad id 404s instead of updating nothing.
	if _, err := h.catalogService.RetrieveBook(ctx, volumeID); err != nil {
		return errors.WithStack(err)
	}

	err := h.catalogService.UpdateBook(ctx, UpdateBookPayload{
		VolumeID:      volumeID,
		Title:         params.Title,
		Number:        params.Number,
		Publisher:     params.Publisher,
		PublishedDate: params.PublishedDate,
		Description:   params.Description,
		PageCount:     params.PageCount,
		Language:      params.Language,
		Authors:       params.Authors,
		Groups:        params.Groups,
		CustomFields:  params.CustomFields,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	book, err := h.catalogService.RetrieveBook(ctx, volumeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) updateNumber(c echo.Context) error {
	ctx := c.Request().Context()
	volumeID := c.Param("id")

	params := UpdateNumberPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if _, err := h.catalogService.RetrieveBook(ctx, volumeID); err != nil {
		return errors.WithStack(err)
	}

	if err := h.catalogService.SetBookNumber(ctx, volumeID, params.Number); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.catalogService.RetrieveBook(ctx, volumeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) updateGroups(c echo.Context) error {
	ctx := c.Request().Context()
	volumeID := c.Param("id")

	params := UpdateGroupsPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if _, err := h.catalogService.RetrieveBook(ctx, volumeID); err != nil {
		return errors.WithStack(err)
	}

	if err := h.catalogService.SetBookGroups(ctx, volumeID, params.Groups); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.catalogService.RetrieveBook(ctx, volumeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) clone(c echo.Context) error {
	ctx := c.Request().Context()

	cloneID, err := h.catalogService.CloneBook(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	book, err := h.catalogService.RetrieveBook(ctx, cloneID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, book))
}

func (h *handler) identifierExists(c echo.Context) error {
	ctx := c.Request().Context()

	exists, err := h.catalogService.IdentifierExists(ctx, c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]interface{}{
		"exists": exists,
	}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) findComicByEAN(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.catalogService.FindComicByEAN(ctx, c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}
	if book == nil {
		return errcodes.NotFound("Comic")
	}

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

func (h *handler) listGroups(c echo.Context) error {
	ctx := c.Request().Context()

	names, err := h.catalogService.ListGroupNames(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]interface{}{
		"groups": names,
	}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) listCustomFields(c echo.Context) error {
	ctx := c.Request().Context()

	names, err := h.catalogService.ListCustomFieldNames(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]interface{}{
		"custom_fields": names,
	}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}
