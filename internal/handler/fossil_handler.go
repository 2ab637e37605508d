package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fossilario/internal/auth"
	"fossilario/internal/errors"
	"fossilario/internal/repository"
	"fossilario/internal/service"
)

// FossilHandler handles fossil catalog endpoints.
type FossilHandler struct {
	fossilService service.FossilService
}

// NewFossilHandler creates a new fossil handler.
func NewFossilHandler(fossilService service.FossilService) *FossilHandler {
	return &FossilHandler{fossilService: fossilService}
}

// List returns a filtered, sorted, paginated page of fossils.
// GET /fosseis
func (h *FossilHandler) List(c echo.Context) error {
	filter := repository.FossilFilter{
		Query:       c.QueryParam("q"),
		Especie:     c.QueryParam("especie"),
		Familia:     c.QueryParam("familia"),
		Periodo:     c.QueryParam("periodo"),
		Localizacao: c.QueryParam("localizacao"),
		OrderBy:     c.QueryParam("orderBy"),
		OrderDir:    c.QueryParam("orderDir"),
	}

	// A userId that does not parse is ignored, not rejected.
	if raw := c.QueryParam("userId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.UserID = uint(id)
		}
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	if raw := c.QueryParam("limit"); raw != "" {
		filter.Limit, _ = strconv.Atoi(raw)
	} else {
		filter.Limit, _ = strconv.Atoi(c.QueryParam("pageSize"))
	}

	page, err := h.fossilService.List(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Errorf("list fossils: %v", err)
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns the public detail of a fossil with its contributor projection.
// GET /fosseis/:id
func (h *FossilHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	detail, err := h.fossilService.Get(c.Request().Context(), id)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("get fossil %d: %v", id, err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, detail)
}

// Create registers a fossil owned by the authenticated caller. Multipart
// form; the image field "imagem" is optional.
// POST /fosseis
func (h *FossilHandler) Create(c echo.Context) error {
	callerID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}

	in := service.FossilInput{
		Especie:     c.FormValue("especie"),
		Familia:     c.FormValue("familia"),
		Periodo:     c.FormValue("periodo"),
		Localizacao: c.FormValue("localizacao"),
	}
	if desc := c.FormValue("descricao"); desc != "" {
		in.Descricao = &desc
	}

	fossil, err := h.fossilService.Create(c.Request().Context(), callerID, in, formImage(c))
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("create fossil: %v", err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, fossil)
}

// Update partially updates an owned fossil; a new image replaces the old one.
// PUT /fosseis/:id
func (h *FossilHandler) Update(c echo.Context) error {
	callerID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	// Fields absent from the form are left untouched, so presence is checked
	// against the parsed form values rather than FormValue's zero default.
	var in service.FossilUpdate
	if values, err := c.FormParams(); err == nil {
		in.Especie = formOptional(values, "especie")
		in.Familia = formOptional(values, "familia")
		in.Periodo = formOptional(values, "periodo")
		in.Localizacao = formOptional(values, "localizacao")
		in.Descricao = formOptional(values, "descricao")
	}

	fossil, err := h.fossilService.Update(c.Request().Context(), callerID, id, in, formImage(c))
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("update fossil %d: %v", id, err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, fossil)
}

// Delete removes an owned fossil and its stored image.
// DELETE /fosseis/:id
func (h *FossilHandler) Delete(c echo.Context) error {
	callerID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.fossilService.Delete(c.Request().Context(), callerID, id); err != nil {
		he := errors.MapErrorToHTTP(err)
		if he.Code == "INTERNAL_ERROR" {
			c.Logger().Errorf("delete fossil %d: %v", id, err)
		}
		return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "fossil not found",
			Code:  "NOT_FOUND",
		})
	}
	return uint(id), nil
}

// formImage returns the optional "imagem" upload, nil when absent.
func formImage(c echo.Context) *multipart.FileHeader {
	file, err := c.FormFile("imagem")
	if err != nil {
		return nil
	}
	return file
}

// formOptional distinguishes an absent form field from a supplied empty one.
func formOptional(values map[string][]string, key string) *string {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}
