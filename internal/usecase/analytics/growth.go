package analytics

import (
	"fmt"
	"strings"
	"time"

	"jobwise/internal/domain"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// MaxGrowthBuckets bounds a single growth request.
const MaxGrowthBuckets = 400

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	case "":
		return PeriodWeekly, nil
	default:
		return "", domain.NewValidationError("period", "period must be one of: daily, weekly, monthly")
	}
}

type GrowthPoint struct {
	Label     string    `json:"name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Users     int       `json:"users"`
	Jobs      int       `json:"jobs"`
	Feedbacks int       `json:"feedbacks"`
}

// GrowthInput carries the timestamps to bucket: account join dates,
// application applied dates and feedback submission dates. A zero From or
// To is taken from the earliest or latest timestamp. A given From or To is
// a whole UTC day and bounds which timestamps are counted.
type GrowthInput struct {
	Period    Period
	From      time.Time
	To        time.Time
	Users     []time.Time
	Jobs      []time.Time
	Feedbacks []time.Time
}

// Growth counts records per period bucket. Buckets are contiguous, start at
// From's day (daily, weekly) or month (monthly) in UTC, and the last one
// contains To. Records outside every bucket, or outside a given From or To
// day, are ignored. Only a range with both ends given can be inverted; a
// side taken from the data is clamped to the other.
func Growth(in GrowthInput) ([]GrowthPoint, error) {
	period := in.Period
	if period == "" {
		period = PeriodWeekly
	}
	if _, err := ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	from, to, ok := bounds(in)
	if !ok {
		return []GrowthPoint{}, nil
	}
	if to.Before(from) {
		switch {
		case !in.From.IsZero() && !in.To.IsZero():
			return nil, domain.NewValidationError("to", "to must not be before from")
		case in.To.IsZero():
			to = from
		default:
			from = to
		}
	}
	within := func(t time.Time) bool {
		if !in.From.IsZero() && t.Before(truncate(from, PeriodDaily)) {
			return false
		}
		if !in.To.IsZero() && !t.Before(truncate(to, PeriodDaily).AddDate(0, 0, 1)) {
			return false
		}
		return true
	}

	start := truncate(from, period)
	var points []GrowthPoint
	for cur := start; !cur.After(to); {
		if len(points) == MaxGrowthBuckets {
			return nil, domain.NewValidationError("period", fmt.Sprintf("range spans more than %d buckets", MaxGrowthBuckets))
		}
		next := advance(cur, period)
		points = append(points, GrowthPoint{Label: label(cur, next, period), Start: cur, End: next})
		cur = next
	}

	place := func(ts []time.Time, inc func(*GrowthPoint)) {
		for _, t := range ts {
			if t = t.UTC(); !within(t) {
				continue
			}
			if i := indexOf(points, t); i >= 0 {
				inc(&points[i])
			}
		}
	}
	place(in.Users, func(p *GrowthPoint) { p.Users++ })
	place(in.Jobs, func(p *GrowthPoint) { p.Jobs++ })
	place(in.Feedbacks, func(p *GrowthPoint) { p.Feedbacks++ })

	return points, nil
}

func bounds(in GrowthInput) (time.Time, time.Time, bool) {
	from, to := in.From.UTC(), in.To.UTC()
	if !in.From.IsZero() && !in.To.IsZero() {
		return from, to, true
	}

	var lo, hi time.Time
	seen := false
	for _, set := range [][]time.Time{in.Users, in.Jobs, in.Feedbacks} {
		for _, t := range set {
			t = t.UTC()
			if !seen || t.Before(lo) {
				lo = t
			}
			if !seen || t.After(hi) {
				hi = t
			}
			seen = true
		}
	}

	if in.From.IsZero() {
		if !seen {
			return time.Time{}, time.Time{}, false
		}
		from = lo
	}
	if in.To.IsZero() {
		if !seen {
			return time.Time{}, time.Time{}, false
		}
		to = hi
	}
	return from, to, true
}

func truncate(t time.Time, p Period) time.Time {
	t = t.UTC()
	if p == PeriodMonthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func advance(t time.Time, p Period) time.Time {
	switch p {
	case PeriodDaily:
		return t.AddDate(0, 0, 1)
	case PeriodMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 7)
	}
}

func label(start, end time.Time, p Period) string {
	switch p {
	case PeriodDaily:
		return start.Format("Jan 2")
	case PeriodMonthly:
		return start.Format("Jan 2006")
	}
	last := end.AddDate(0, 0, -1)
	if last.Month() == start.Month() {
		return fmt.Sprintf("%s-%d", start.Format("Jan 2"), last.Day())
	}
	return fmt.Sprintf("%s-%s", start.Format("Jan 2"), last.Format("Jan 2"))
}

func indexOf(points []GrowthPoint, t time.Time) int {
	for i := range points {
		if !t.Before(points[i].Start) && t.Before(points[i].End) {
			return i
		}
	}
	return -1
}
