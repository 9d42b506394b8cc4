package domain

import (
	"strings"
	"time"
)

const MaxReviewComment = 1000

type Review struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	FlightID    int64     `json:"flightId"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	SubmittedAt time.Time `json:"submittedAt"`
	Reviewer    string    `json:"reviewer,omitempty"`
}

func (r *Review) Normalize() error {
	r.Comment = strings.TrimSpace(r.Comment)
	if r.FlightID <= 0 {
		return Validation("FlightId is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return Validation("Rating must be between 1 and 5")
	}
	if len(r.Comment) > MaxReviewComment {
		return Validation("Comment cannot exceed 1000 characters")
	}
	return nil
}
