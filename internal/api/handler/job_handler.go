package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salone-skillshub/skillshub/internal/api/middleware"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /v1/jobs.
//
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Param        q         query     string  false  "Search in title and description"
// @Param        location  query     string  false  "Location filter"
// @Param        jobType   query     string  false  "Job type"  Enums(FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP, APPRENTICESHIP)
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listJobsResponse
// @Failure      400       {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	var q listJobsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), ports.ListJobsInput{
		Search:   q.Search,
		Location: q.Location,
		JobType:  domain.JobType(q.JobType),
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listJobsResponse{
		Items:      nonNil(res.Items),
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	job, err := h.service.Get(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createJobRequest  true  "Job posting"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.Create(c.Request().Context(), id, ports.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		JobType:     domain.JobType(req.JobType),
		Status:      domain.JobStatus(req.Status),
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		SkillIDs:    req.SkillIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Update handles PATCH /v1/jobs/:id.
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int               true  "Job ID"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := ports.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		SkillIDs:    req.SkillIDs,
	}
	if req.JobType != nil {
		jt := domain.JobType(*req.JobType)
		patch.JobType = &jt
	}
	if req.Status != nil {
		st := domain.JobStatus(*req.Status)
		patch.Status = &st
	}

	job, err := h.service.Update(c.Request().Context(), id, jobID, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete handles DELETE /v1/jobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     SessionCookie
// @Param        id  path  int  true  "Job ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id, jobID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Mine handles GET /v1/jobs/mine.
//
// @Summary      List the caller's jobs
// @Tags         jobs
// @Produce      json
// @Security     SessionCookie
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listJobsResponse
// @Router       /v1/jobs/mine [get]
func (h *JobHandler) Mine(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var q pageQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}
	res, err := h.service.ListMine(c.Request().Context(), id, q.Page, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listJobsResponse{
		Items:      nonNil(res.Items),
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}
