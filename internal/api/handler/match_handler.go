package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/matching"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

// MatchHandler serves job recommendations and talent browsing.
type MatchHandler struct {
	service ports.MatchService
}

func NewMatchHandler(service ports.MatchService) *MatchHandler {
	return &MatchHandler{service: service}
}

// Recommended handles GET /v1/jobs/recommended.
//
// @Summary      Recommend open jobs for the calling seeker
// @Tags         matching
// @Produce      json
// @Security     SessionCookie
// @Param        useMatching  query  bool  false  "Score and rank results (default true)"
// @Param        skillFilter  query  bool  false  "Drop jobs without overlapping skills (default true)"
// @Param        limit        query  int   false  "Maximum results (max 100)"
// @Success      200          {array}   jobMatchResponse
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /v1/jobs/recommended [get]
func (h *MatchHandler) Recommended(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	opts, limit, err := matchOptions(c)
	if err != nil {
		return err
	}

	matches, err := h.service.RecommendJobs(c.Request().Context(), id, ports.RecommendInput{Options: opts, Limit: limit})
	if err != nil {
		return err
	}
	out := make([]jobMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, jobMatchResponse{Job: m.Job, MatchScore: m.Score})
	}
	return c.JSON(http.StatusOK, out)
}

// Talent handles GET /v1/talent.
//
// @Summary      Browse job seekers ranked against the caller's open jobs
// @Tags         matching
// @Produce      json
// @Security     SessionCookie
// @Param        pathway      query  string  false  "Pathway filter"  Enums(STUDENT, GRADUATE, ARTISAN)
// @Param        skills       query  string  false  "Comma separated skill ids overriding the open-job skills"
// @Param        useMatching  query  bool    false  "Score and rank results (default true)"
// @Param        skillFilter  query  bool    false  "Drop talent without overlapping skills (default true)"
// @Param        limit        query  int     false  "Maximum results (max 100)"
// @Success      200          {array}   talentMatchResponse
// @Failure      400          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Router       /v1/talent [get]
func (h *MatchHandler) Talent(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	opts, limit, err := matchOptions(c)
	if err != nil {
		return err
	}
	skills, err := parseIDList(c.QueryParam("skills"))
	if err != nil {
		return err
	}

	matches, err := h.service.BrowseTalent(c.Request().Context(), id, ports.TalentInput{
		Options:  opts,
		Pathway:  domain.Pathway(strings.ToUpper(c.QueryParam("pathway"))),
		SkillIDs: skills,
		Limit:    limit,
	})
	if err != nil {
		return err
	}
	out := make([]talentMatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, talentMatchResponse{SeekerProfile: m.Profile, MatchScore: m.Score})
	}
	return c.JSON(http.StatusOK, out)
}

// matchOptions reads the two independent toggles, both defaulting to true.
func matchOptions(c echo.Context) (matching.Options, int, error) {
	opts := matching.DefaultOptions()
	var err error
	if opts.UseMatching, err = queryBool(c, "useMatching", opts.UseMatching); err != nil {
		return opts, 0, err
	}
	if opts.SkillFilter, err = queryBool(c, "skillFilter", opts.SkillFilter); err != nil {
		return opts, 0, err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			return opts, 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 100")
		}
	}
	return opts, limit, nil
}

func queryBool(c echo.Context, name string, def bool) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, echo.NewHTTPError(http.StatusBadRequest, name+" must be true or false")
	}
	return v, nil
}

// parseIDList parses "1,2,3" into ids.
func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "skills must be a comma separated list of positive ids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
