package jobs

import (
	"strings"

	"jobwise/internal/domain/application"
	"jobwise/internal/pkg/validation"
)

// CreateInput is the user-entered field set for a new application.
// An empty Status means applied.
type CreateInput struct {
	Company     string `json:"company" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=applied interview offer rejected accepted"`
	AppliedDate string `json:"appliedDate" validate:"required,datetime=2006-01-02"`
	Notes       string `json:"notes"`
}

// UpdateInput replaces only the fields that are non-nil.
type UpdateInput struct {
	Company     *string `json:"company"`
	Position    *string `json:"position"`
	Status      *string `json:"status"`
	AppliedDate *string `json:"appliedDate"`
	Notes       *string `json:"notes"`
}

func (in UpdateInput) Empty() bool {
	return in.Company == nil && in.Position == nil && in.Status == nil && in.AppliedDate == nil && in.Notes == nil
}

func (in CreateInput) normalize() CreateInput {
	in.Company = strings.TrimSpace(in.Company)
	in.Position = strings.TrimSpace(in.Position)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.AppliedDate = strings.TrimSpace(in.AppliedDate)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

// withDefaults fills the fields a new record may omit. Updates never go
// through it, so an explicit empty status on update fails validation.
func (in CreateInput) withDefaults() CreateInput {
	if strings.TrimSpace(in.Status) == "" {
		in.Status = string(application.StatusApplied)
	}
	return in
}

// build validates in and returns the record it describes, keeping id.
func (in CreateInput) build(id string) (application.Application, error) {
	in = in.normalize()
	if err := validation.Struct(in); err != nil {
		return application.Application{}, err
	}

	day, err := application.ParseDate(in.AppliedDate)
	if err != nil {
		return application.Application{}, err
	}

	return application.Application{
		ID:          id,
		Company:     in.Company,
		Position:    in.Position,
		Status:      application.Status(in.Status),
		AppliedDate: day,
		Notes:       in.Notes,
	}, nil
}

func fromRecord(a application.Application) CreateInput {
	return CreateInput{
		Company:     a.Company,
		Position:    a.Position,
		Status:      string(a.Status),
		AppliedDate: a.AppliedDate.Format(application.DateLayout),
		Notes:       a.Notes,
	}
}

func (in UpdateInput) mergeOver(base CreateInput) CreateInput {
	if in.Company != nil {
		base.Company = *in.Company
	}
	if in.Position != nil {
		base.Position = *in.Position
	}
	if in.Status != nil {
		base.Status = *in.Status
	}
	if in.AppliedDate != nil {
		base.AppliedDate = *in.AppliedDate
	}
	if in.Notes != nil {
		base.Notes = *in.Notes
	}
	return base
}
