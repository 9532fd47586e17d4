package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// IdempotencyKeyHeader lets clients retry non-idempotent writes safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Create handles POST /v1/applications.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        Idempotency-Key  header    string        false  "Deduplication key"
// @Param        body             body      applyRequest  true   "Application"
// @Success      201              {object}  domain.Application
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/applications [post]
func (h *ApplicationHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.service.Apply(c.Request().Context(), id, ports.ApplyInput{
		JobID:          req.JobID,
		CoverLetter:    req.CoverLetter,
		IdempotencyKey: c.Request().Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// Mine handles GET /v1/applications/mine.
//
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}  domain.Application
// @Router       /v1/applications/mine [get]
func (h *ApplicationHandler) Mine(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	apps, err := h.service.ListMine(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(apps))
}

// ListForJob handles GET /v1/jobs/:id/applications.
//
// @Summary      List applicants of a job
// @Tags         applications
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Job ID"
// @Success      200  {array}   domain.Application
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [get]
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	apps, err := h.service.ListForJob(c.Request().Context(), id, jobID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(apps))
}

// Get handles GET /v1/applications/:id.
//
// @Summary      Get an application with its status history
// @Tags         applications
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  applicationDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Request().Context(), id, appID)
	if err != nil {
		return err
	}
	history := detail.History
	if history == nil {
		history = []domain.ApplicationEvent{}
	}
	return c.JSON(http.StatusOK, applicationDetailResponse{Application: detail.Application, History: history})
}

// UpdateStatus handles PATCH /v1/applications/:id.
//
// @Summary      Move an application along the review pipeline
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int                       true  "Application ID"
// @Param        body  body      updateApplicationRequest  true  "New status"
// @Success      200   {object}  domain.Application
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/applications/{id} [patch]
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateApplicationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	app, err := h.service.UpdateStatus(c.Request().Context(), id, appID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Delete handles DELETE /v1/applications/:id.
//
// @Summary      Delete an application
// @Tags         applications
// @Security     SessionCookie
// @Param        id  path  int  true  "Application ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	appID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, appID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
