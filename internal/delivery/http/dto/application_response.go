package dto

import "jobwise/internal/domain/application"

type ApplicationResponse struct {
	ID          string             `json:"id"`
	Company     string             `json:"company"`
	Position    string             `json:"position"`
	Status      application.Status `json:"status"`
	StatusLabel string             `json:"statusLabel"`
	AppliedDate string             `json:"appliedDate"`
	Notes       string             `json:"notes"`
}

type ApplicationListResponse struct {
	Items []ApplicationResponse `json:"items"`
	Total int                   `json:"total"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		Company:     a.Company,
		Position:    a.Position,
		Status:      a.Status,
		StatusLabel: a.Status.Label(),
		AppliedDate: a.AppliedDate.Format(application.DateLayout),
		Notes:       a.Notes,
	}
}

// NewApplicationListResponse keeps the order of items. Total counts every
// record before filtering.
func NewApplicationListResponse(items []application.Application, total int) ApplicationListResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewApplicationResponse(it))
	}
	return ApplicationListResponse{Items: out, Total: total}
}
