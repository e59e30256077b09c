package feedback

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Entry is a submitted feedback record. Name and Email are optional.
type Entry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Email    string    `json:"email,omitempty"`
	Feedback string    `json:"feedback"`
	Rating   int       `json:"rating"`
	Date     time.Time `json:"date"`
}
