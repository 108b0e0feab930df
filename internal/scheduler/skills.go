package scheduler

import (
	"strings"

	"github.com/fieldserve/dispatch/internal/domain"
)

// SkillMapper infers the skill tags a job category calls for.
type SkillMapper interface {
	RequiredSkills(category string) []string
}

// CategoryTable maps category keywords to skill tags by substring match.
// Entries are ordered: the first keyword found in the category text wins,
// so lookups stay deterministic.
type CategoryTable []CategoryEntry

type CategoryEntry struct {
	Keyword string
	Tags    []string
}

// DefaultCategories covers the trades the dispatcher ships with. Matching
// is case-insensitive substring, so "HVAC Repair" and "hvac maintenance"
// both resolve to the hvac tags.
var DefaultCategories = CategoryTable{
	{Keyword: "hvac", Tags: []string{"hvac", "heating", "cooling"}},
	{Keyword: "plumb", Tags: []string{"plumbing", "pipes"}},
	{Keyword: "electric", Tags: []string{"electrical", "wiring"}},
	{Keyword: "appliance", Tags: []string{"appliance", "repair"}},
}

func (t CategoryTable) RequiredSkills(category string) []string {
	c := strings.ToLower(category)
	if c == "" {
		return nil
	}
	for _, e := range t {
		if strings.Contains(c, e.Keyword) {
			return e.Tags
		}
	}
	return nil
}

// HasSkills reports whether the technician covers the required tags. A job
// with no inferred skills matches anyone, and a technician with no declared
// skills is treated as a generalist who can take any job. One overlapping
// tag is enough: coverage is any-of, not all-of.
func HasSkills(tech *domain.Technician, required []string) bool {
	if len(required) == 0 {
		return true
	}
	declared := tech.AllSkills()
	if len(declared) == 0 {
		return true
	}
	for _, have := range declared {
		h := strings.ToLower(have)
		for _, want := range required {
			if strings.Contains(h, strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}

// HasCertifications reports whether every required certification appears
// verbatim in the technician's list (case-insensitive). Certifications are
// all-of: one missing credential fails the check.
func HasCertifications(tech *domain.Technician, required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range tech.Certifications {
			if strings.EqualFold(have, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
