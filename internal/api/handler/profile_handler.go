package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// ProfileHandler handles profile completion and the skill taxonomy.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// SaveEmployer handles PUT /v1/profile/employer.
//
// @Summary      Create or update the employer profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      employerProfileRequest  true  "Employer profile"
// @Success      200   {object}  domain.EmployerProfile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/profile/employer [put]
func (h *ProfileHandler) SaveEmployer(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req employerProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.SaveEmployer(c.Request().Context(), id, ports.EmployerProfileInput{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Location:    req.Location,
		Website:     req.Website,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// SaveSeeker handles PUT /v1/profile/seeker.
//
// @Summary      Create or update the job seeker profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      seekerProfileRequest  true  "Seeker profile"
// @Success      200   {object}  domain.SeekerProfile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/profile/seeker [put]
func (h *ProfileHandler) SaveSeeker(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req seekerProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.SaveSeeker(c.Request().Context(), id, ports.SeekerProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Headline:  req.Headline,
		Bio:       req.Bio,
		Location:  req.Location,
		Pathway:   domain.Pathway(req.Pathway),
		SkillIDs:  req.SkillIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Skills handles GET /v1/skills.
//
// @Summary      List the skill taxonomy
// @Tags         profiles
// @Produce      json
// @Success      200  {array}  domain.Skill
// @Router       /v1/skills [get]
func (h *ProfileHandler) Skills(c echo.Context) error {
	skills, err := h.service.Skills(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, skills)
}
