package dto

import (
	"jobwise/internal/usecase/analytics"
)

type DashboardResponse struct {
	Total      int                     `json:"total"`
	Applied    int                     `json:"applied"`
	Interviews int                     `json:"interviews"`
	Offers     int                     `json:"offers"`
	Accepted   int                     `json:"accepted"`
	Series     []analytics.StatusCount `json:"series"`
	Recent     []ApplicationResponse   `json:"recent"`
}

func NewDashboardResponse(s analytics.DashboardStats) DashboardResponse {
	recent := make([]ApplicationResponse, 0, len(s.Recent))
	for _, a := range s.Recent {
		recent = append(recent, NewApplicationResponse(a))
	}
	return DashboardResponse{
		Total:      s.Total,
		Applied:    s.Applied,
		Interviews: s.Interviews,
		Offers:     s.Offers,
		Accepted:   s.Accepted,
		Series:     s.Series,
		Recent:     recent,
	}
}
