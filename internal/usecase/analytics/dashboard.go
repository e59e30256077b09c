package analytics

import (
	"slices"

	"jobwise/internal/domain/application"
)

// RecentLimit is how many of the newest records a dashboard shows.
const RecentLimit = 5

type StatusCount struct {
	Status application.Status `json:"status"`
	Name   string             `json:"name"`
	Value  int                `json:"value"`
	Color  string             `json:"color"`
}

// DashboardStats summarizes one user's applications. Rejected has no field
// of its own; it only appears in Series, which the bar and proportion
// charts both render.
type DashboardStats struct {
	Total      int                       `json:"total"`
	Applied    int                       `json:"applied"`
	Interviews int                       `json:"interviews"`
	Offers     int                       `json:"offers"`
	Accepted   int                       `json:"accepted"`
	Series     []StatusCount             `json:"series"`
	Recent     []application.Application `json:"recent"`
}

func (d DashboardStats) clone() DashboardStats {
	d.Series = slices.Clone(d.Series)
	d.Recent = slices.Clone(d.Recent)
	return d
}

// Dashboard computes per-user stats from records in list order.
func Dashboard(records []application.Application) DashboardStats {
	counts := make(map[application.Status]int, len(application.Statuses))
	for _, r := range records {
		counts[r.Status]++
	}

	series := make([]StatusCount, 0, len(application.Statuses))
	for _, st := range application.Statuses {
		series = append(series, StatusCount{
			Status: st,
			Name:   st.Label(),
			Value:  counts[st],
			Color:  st.Color(),
		})
	}

	n := len(records)
	if n > RecentLimit {
		n = RecentLimit
	}
	recent := make([]application.Application, n)
	copy(recent, records[:n])

	return DashboardStats{
		Total:      len(records),
		Applied:    counts[application.StatusApplied],
		Interviews: counts[application.StatusInterview],
		Offers:     counts[application.StatusOffer],
		Accepted:   counts[application.StatusAccepted],
		Series:     series,
		Recent:     recent,
	}
}
