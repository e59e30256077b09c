package analytics

import (
	"fmt"

	"jobwise/internal/domain/feedback"
	"jobwise/internal/domain/user"
)

type AdminOverview struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalJobs      int     `json:"totalJobs"`
	TotalFeedbacks int     `json:"totalFeedbacks"`
	AverageRating  float64 `json:"averageRating"`
}

type RatingBucket struct {
	Rating int    `json:"rating"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Overview aggregates the roster and feedback. AverageRating is 0 when there
// is no feedback.
func Overview(users []user.Account, entries []feedback.Entry) AdminOverview {
	out := AdminOverview{
		TotalUsers:     len(users),
		TotalFeedbacks: len(entries),
	}
	for _, u := range users {
		out.TotalJobs += u.JobsCount
	}

	if len(entries) == 0 {
		return out
	}
	sum := 0
	for _, e := range entries {
		sum += e.Rating
	}
	out.AverageRating = float64(sum) / float64(len(entries))
	return out
}

// RatingDistribution counts entries per exact rating, from 5 down to 1.
func RatingDistribution(entries []feedback.Entry) []RatingBucket {
	counts := make(map[int]int, feedback.MaxRating)
	for _, e := range entries {
		counts[e.Rating]++
	}

	out := make([]RatingBucket, 0, feedback.MaxRating)
	for r := feedback.MaxRating; r >= feedback.MinRating; r-- {
		out = append(out, RatingBucket{Rating: r, Label: fmt.Sprintf("%d Star", r), Count: counts[r]})
	}
	return out
}
