// Package matching scores the overlap between a wanted and a possessed set of
// skill identifiers and ranks the results.
//
// Two formulas are kept on purpose:
//
//	SeekerJobScore      = round(100 * |w ∩ p| / max(|w|, |p|))
//	EmployerTalentScore = round(100 * |w ∩ p| / |w|)
//
// Both are 0 when the wanted set is empty.
package matching

import (
	"sort"
	"time"
)

// SkillSet is an unordered set of skill ids.
type SkillSet map[int64]struct{}

// NewSkillSet builds a set from ids; duplicates collapse.
func NewSkillSet(ids ...int64) SkillSet {
	s := make(SkillSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts ids into s.
func (s SkillSet) Add(ids ...int64) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Len returns the number of distinct ids.
func (s SkillSet) Len() int { return len(s) }

// Slice returns the ids in ascending order.
func (s SkillSet) Slice() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Overlap returns |a ∩ b|.
func Overlap(a, b SkillSet) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for id := range a {
		if _, ok := b[id]; ok {
			n++
		}
	}
	return n
}

// SeekerJobScore rates how well a job (wanted) fits a seeker's skills
// (possessed). Broad unrelated skill sets lower the score.
func SeekerJobScore(wanted, possessed SkillSet) int {
	if wanted.Len() == 0 {
		return 0
	}
	denom := wanted.Len()
	if possessed.Len() > denom {
		denom = possessed.Len()
	}
	return percent(Overlap(wanted, possessed), denom)
}

// EmployerTalentScore rates how much of the employer's required skills
// (wanted) a candidate covers. Extra skills are not penalised.
func EmployerTalentScore(wanted, possessed SkillSet) int {
	if wanted.Len() == 0 {
		return 0
	}
	return percent(Overlap(wanted, possessed), wanted.Len())
}

// percent computes round-half-up(100*num/denom) in integer arithmetic.
func percent(num, denom int) int {
	if denom <= 0 || num <= 0 {
		return 0
	}
	return (200*num + denom) / (2 * denom)
}

// Scored is anything that can be ranked.
type Scored interface {
	MatchScore() int
	Created() time.Time
}

// Rank sorts items by score descending, then creation time descending.
// Items equal on both keys keep their input order.
func Rank[T Scored](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		si, sj := items[i].MatchScore(), items[j].MatchScore()
		if si != sj {
			return si > sj
		}
		return items[i].Created().After(items[j].Created())
	})
}

// Options toggles the two independent steps applied by callers.
type Options struct {
	// UseMatching computes scores and ranks; when false the scorer is bypassed.
	UseMatching bool
	// SkillFilter drops candidates with no overlapping skill.
	SkillFilter bool
}

// DefaultOptions enables both scoring and filtering.
func DefaultOptions() Options {
	return Options{UseMatching: true, SkillFilter: true}
}
