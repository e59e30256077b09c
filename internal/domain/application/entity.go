package application

import (
	"time"
)

type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusAccepted  Status = "accepted"
)

// StatusAll is the filter value that matches every status.
const StatusAll = "all"

// DateLayout is the wire and input format of AppliedDate.
const DateLayout = "2006-01-02"

// Statuses lists every status in display order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusAccepted}

type statusMeta struct {
	label string
	color string
}

var meta = map[Status]statusMeta{
	StatusApplied:   {label: "Applied", color: "#3B82F6"},
	StatusInterview: {label: "Interview", color: "#EAB308"},
	StatusOffer:     {label: "Offer", color: "#10B981"},
	StatusRejected:  {label: "Rejected", color: "#EF4444"},
	StatusAccepted:  {label: "Accepted", color: "#8B5CF6"},
}

func (s Status) Valid() bool {
	_, ok := meta[s]
	return ok
}

func (s Status) Label() string {
	if m, ok := meta[s]; ok {
		return m.label
	}
	return string(s)
}

func (s Status) Color() string {
	return meta[s].color
}

// Application is one tracked job application. Any status may be replaced by
// any other through an update; there is no terminal state.
type Application struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Status      Status    `json:"status"`
	AppliedDate time.Time `json:"appliedDate"`
	Notes       string    `json:"notes,omitempty"`
}

// ParseDate parses a calendar date in DateLayout as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
