package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/salone-skillshub/skillshub/internal/api/middleware"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
	"github.com/salone-skillshub/skillshub/internal/core/ports"
)

type stubMatchService struct {
	recommendFn func(ctx context.Context, caller *domain.Identity, in ports.RecommendInput) ([]ports.JobMatch, error)
	talentFn    func(ctx context.Context, caller *domain.Identity, in ports.TalentInput) ([]ports.TalentMatch, error)
}

func (s *stubMatchService) RecommendJobs(ctx context.Context, caller *domain.Identity, in ports.RecommendInput) ([]ports.JobMatch, error) {
	return s.recommendFn(ctx, caller, in)
}

func (s *stubMatchService) BrowseTalent(ctx context.Context, caller *domain.Identity, in ports.TalentInput) ([]ports.TalentMatch, error) {
	return s.talentFn(ctx, caller, in)
}

func intPtr(v int) *int { return &v }

func TestMatchHandler_Recommended_DefaultsAndScores(t *testing.T) {
	e := newTestEcho()
	stub := &stubMatchService{
		recommendFn: func(ctx context.Context, caller *domain.Identity, in ports.RecommendInput) ([]ports.JobMatch, error) {
			if !in.Options.UseMatching || !in.Options.SkillFilter || in.Limit != 0 {
				t.Fatalf("unexpected defaults: %+v", in)
			}
			return []ports.JobMatch{
				{Job: &domain.Job{ID: 1, Title: "Electrician"}, Score: intPtr(100)},
				{Job: &domain.Job{ID: 2, Title: "Tailor"}, Score: intPtr(67)},
			}, nil
		},
	}
	handler := NewMatchHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/jobs/recommended", nil), rec)
	middleware.SetIdentity(c, seeker)

	if err := handler.Recommended(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["match_score"] != float64(100) || resp[1]["title"] != "Tailor" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestMatchHandler_Recommended_MatchingOffOmitsScore(t *testing.T) {
	e := newTestEcho()
	stub := &stubMatchService{
		recommendFn: func(ctx context.Context, caller *domain.Identity, in ports.RecommendInput) ([]ports.JobMatch, error) {
			if in.Options.UseMatching || !in.Options.SkillFilter || in.Limit != 5 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return []ports.JobMatch{{Job: &domain.Job{ID: 1}}}, nil
		},
	}
	handler := NewMatchHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/jobs/recommended?useMatching=false&limit=5", nil), rec)
	middleware.SetIdentity(c, seeker)

	if err := handler.Recommended(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp[0]["match_score"]; ok {
		t.Fatalf("score must be omitted when matching is off: %+v", resp[0])
	}
}

func TestMatchHandler_RejectsBadQuery(t *testing.T) {
	handler := NewMatchHandler(&stubMatchService{})
	for _, target := range []string{
		"/v1/talent?useMatching=maybe",
		"/v1/talent?limit=0",
		"/v1/talent?limit=101",
		"/v1/talent?skills=1,x",
		"/v1/talent?skills=-3",
	} {
		e := newTestEcho()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		middleware.SetIdentity(c, &domain.Identity{UserID: 42, Role: domain.RoleEmployer})

		if code := httpStatus(t, handler.Talent(c)); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, code)
		}
	}
}

func TestMatchHandler_Talent_PassesFilters(t *testing.T) {
	e := newTestEcho()
	stub := &stubMatchService{
		talentFn: func(ctx context.Context, caller *domain.Identity, in ports.TalentInput) ([]ports.TalentMatch, error) {
			if in.Pathway != domain.PathwayArtisan {
				t.Fatalf("expected ARTISAN, got %q", in.Pathway)
			}
			if !reflect.DeepEqual(in.SkillIDs, []int64{1, 2, 3}) {
				t.Fatalf("unexpected skills: %v", in.SkillIDs)
			}
			if in.Options.SkillFilter {
				t.Fatalf("skill filter should be off")
			}
			return []ports.TalentMatch{{Profile: &domain.SeekerProfile{ID: 8, Pathway: domain.PathwayArtisan}, Score: intPtr(0)}}, nil
		},
	}
	handler := NewMatchHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/talent?pathway=artisan&skills=1,2,3&skillFilter=false", nil), rec)
	middleware.SetIdentity(c, &domain.Identity{UserID: 42, Role: domain.RoleEmployer})

	if err := handler.Talent(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["match_score"] != float64(0) {
		t.Fatalf("zero score must be present when matching is on: %+v", resp)
	}
}
