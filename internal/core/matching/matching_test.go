package matching

import (
	"testing"
	"time"
)

func TestScores_EmptyWantedIsZero(t *testing.T) {
	possessed := NewSkillSet(1, 2, 3)
	if got := SeekerJobScore(NewSkillSet(), possessed); got != 0 {
		t.Fatalf("seeker score: expected 0, got %d", got)
	}
	if got := EmployerTalentScore(nil, possessed); got != 0 {
		t.Fatalf("talent score: expected 0, got %d", got)
	}
	if got := EmployerTalentScore(NewSkillSet(), NewSkillSet()); got != 0 {
		t.Fatalf("talent score with both empty: expected 0, got %d", got)
	}
}

func TestSeekerJobScore_Symmetric(t *testing.T) {
	cases := []struct {
		name      string
		wanted    SkillSet
		possessed SkillSet
		want      int
	}{
		{"two of three", NewSkillSet(1, 2, 3), NewSkillSet(1, 2), 67},
		{"broad seeker penalised", NewSkillSet(1, 2), NewSkillSet(1, 2, 3, 4), 50},
		{"exact", NewSkillSet(5, 6), NewSkillSet(6, 5), 100},
		{"no overlap", NewSkillSet(1), NewSkillSet(2), 0},
		{"empty possessed", NewSkillSet(1, 2), NewSkillSet(), 0},
		{"half rounds up", NewSkillSet(1, 2, 3, 4, 5, 6, 7, 8), NewSkillSet(1), 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SeekerJobScore(tc.wanted, tc.possessed); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestEmployerTalentScore_Coverage(t *testing.T) {
	cases := []struct {
		name      string
		wanted    SkillSet
		possessed SkillSet
		want      int
	}{
		{"two of three", NewSkillSet(1, 2, 3), NewSkillSet(1, 2), 67},
		{"extra skills ignored", NewSkillSet(1, 2), NewSkillSet(1, 2, 3, 4), 100},
		{"one of three", NewSkillSet(1, 2, 3), NewSkillSet(3, 9), 33},
		{"no overlap", NewSkillSet(1, 2), NewSkillSet(3), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EmployerTalentScore(tc.wanted, tc.possessed); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFormulasDiverge(t *testing.T) {
	wanted, possessed := NewSkillSet(1, 2), NewSkillSet(1, 2, 3, 4)
	seeker := SeekerJobScore(wanted, possessed)
	talent := EmployerTalentScore(wanted, possessed)
	if seeker != 50 || talent != 100 {
		t.Fatalf("expected seeker=50 talent=100, got seeker=%d talent=%d", seeker, talent)
	}
}

func TestScores_Bounded(t *testing.T) {
	for n := 1; n <= 12; n++ {
		wanted := NewSkillSet()
		for i := 1; i <= n; i++ {
			wanted.Add(int64(i))
		}
		for m := 0; m <= 15; m++ {
			possessed := NewSkillSet()
			for i := 1; i <= m; i++ {
				possessed.Add(int64(i))
			}
			for _, got := range []int{SeekerJobScore(wanted, possessed), EmployerTalentScore(wanted, possessed)} {
				if got < 0 || got > 100 {
					t.Fatalf("score out of range for n=%d m=%d: %d", n, m, got)
				}
			}
		}
	}
}

type item struct {
	name    string
	score   int
	created time.Time
}

func (i item) MatchScore() int    { return i.score }
func (i item) Created() time.Time { return i.created }

func TestRank_ScoreThenNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []item{
		{"old-50", 50, base},
		{"new-50", 50, base.Add(time.Hour)},
		{"top", 90, base.Add(-time.Hour)},
		{"zero", 0, base.Add(2 * time.Hour)},
	}
	Rank(items)

	want := []string{"top", "new-50", "old-50", "zero"}
	for i, name := range want {
		if items[i].name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, items[i].name)
		}
	}
}

func TestRank_StableOnFullTie(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []item{{"a", 40, ts}, {"b", 40, ts}, {"c", 40, ts}, {"d", 40, ts}}
	Rank(items)
	for i, name := range []string{"a", "b", "c", "d"} {
		if items[i].name != name {
			t.Fatalf("tie order not preserved at %d: got %s", i, items[i].name)
		}
	}
}

func TestSkillSet_SliceSortedAndDeduplicated(t *testing.T) {
	got := NewSkillSet(3, 1, 3, 2).Slice()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected slice: %v", got)
	}
}
