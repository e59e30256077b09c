// Package search derives the visible subset of job application records.
// It holds no state; callers may filter the same snapshot repeatedly.
package search

import (
	"strings"

	"jobwise/internal/domain/application"
)

// Criteria is what a caller filters by. An empty Status behaves like "all".
type Criteria struct {
	Term   string
	Status string
}

// Filter keeps records whose company or position contains term (case
// insensitive) and whose status equals status, unless status is "all".
// Input order is preserved and records is not modified.
func Filter(records []application.Application, term, status string) []application.Application {
	return Apply(records, Criteria{Term: term, Status: status})
}

func Apply(records []application.Application, c Criteria) []application.Application {
	needle := strings.ToLower(c.Term)
	status := strings.TrimSpace(c.Status)

	out := make([]application.Application, 0, len(records))
	for _, r := range records {
		if !matchesStatus(r, status) {
			continue
		}
		if !matchesTerm(r, needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesStatus(r application.Application, status string) bool {
	if status == "" || status == application.StatusAll {
		return true
	}
	return string(r.Status) == status
}

func matchesTerm(r application.Application, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Company), needle) ||
		strings.Contains(strings.ToLower(r.Position), needle)
}

// ValidStatusFilter reports whether s is "all", empty, or a known status.
func ValidStatusFilter(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == application.StatusAll || application.Status(s).Valid()
}
