package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// multipartMemory is how much of a form is kept in memory before spilling to
// temporary files.
const multipartMemory = 8 << 20

// UploadHandler accepts multipart file uploads.
type UploadHandler struct {
	service  ports.UploadService
	maxBytes int64
}

func NewUploadHandler(service ports.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{service: service, maxBytes: maxBytes}
}

// Upload handles POST /v1/uploads.
//
// @Summary      Upload a resume, portfolio file or company logo
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     SessionCookie
// @Param        kind   formData  string  true   "Upload kind"  Enums(resume, portfolio, logo)
// @Param        title  formData  string  false  "Portfolio item title"
// @Param        file   formData  file    true   "PDF, PNG or JPEG"
// @Success      201    {object}  uploadResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Router       /v1/uploads [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if h.maxBytes > 0 {
		// multipart overhead on top of the file itself
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, h.maxBytes+1<<20)
	}
	if err := c.Request().ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("file must be at most %d bytes", h.maxBytes))
		}
		return echo.NewHTTPError(http.StatusBadRequest, "request must be multipart/form-data")
	}

	kind := c.FormValue("kind")
	if kind == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "kind is required")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file could not be read")
	}
	defer f.Close()

	res, err := h.service.Upload(c.Request().Context(), id, ports.UploadInput{
		Kind:        kind,
		Title:       c.FormValue("title"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{Key: res.Key, URL: res.URL, PortfolioItem: res.PortfolioItem})
}

// Portfolio handles GET /v1/portfolio.
//
// @Summary      List the caller's portfolio
// @Tags         uploads
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.PortfolioItem
// @Router       /v1/portfolio [get]
func (h *UploadHandler) Portfolio(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListPortfolio(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

// DeletePortfolioItem handles DELETE /v1/portfolio/:id.
//
// @Summary      Delete a portfolio item
// @Tags         uploads
// @Security     SessionCookie
// @Param        id  path  int  true  "Portfolio item ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/portfolio/{id} [delete]
func (h *UploadHandler) DeletePortfolioItem(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeletePortfolioItem(c.Request().Context(), id, itemID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
