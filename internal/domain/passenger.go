package domain

import (
	"strings"
	"time"
)

const (
	MinPassengerAge = 1
	MaxPassengerAge = 120

	DefaultSeatNo = "1A"
)

type PassengerDetail struct {
	ID             int64     `json:"passengerId"`
	UserID         int64     `json:"-"`
	BookingID      int64     `json:"bookingId"`
	SeatNo         string    `json:"seatNo"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	PassportNumber string    `json:"passportNumber"`
	Nationality    string    `json:"nationality"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ValidatePassengers checks every entry and fills placeholder values for
// missing seat and passport numbers. The first bad entry fails the batch.
func ValidatePassengers(passengers []PassengerDetail) error {
	if len(passengers) == 0 {
		return Validation("No passenger data provided.")
	}
	for i := range passengers {
		p := &passengers[i]
		p.FirstName = strings.TrimSpace(p.FirstName)
		p.LastName = strings.TrimSpace(p.LastName)
		p.Gender = strings.TrimSpace(p.Gender)
		p.Nationality = strings.TrimSpace(p.Nationality)

		var reason string
		switch {
		case p.FirstName == "":
			reason = "FirstName is required"
		case p.LastName == "":
			reason = "LastName is required"
		case p.Age < MinPassengerAge || p.Age > MaxPassengerAge:
			reason = "Invalid age"
		case p.Gender == "":
			reason = "Gender is required"
		case p.Nationality == "":
			reason = "Nationality is required"
		}
		if reason != "" {
			return &PassengerError{Position: i + 1, Reason: reason}
		}

		if strings.TrimSpace(p.SeatNo) == "" {
			p.SeatNo = DefaultSeatNo
		}
		p.PassportNumber = strings.TrimSpace(p.PassportNumber)
	}
	return nil
}
