package domain

import (
	"strings"
	"time"
)

type FlightOwner struct {
	ID          int64
	UserID      int64
	AirlineName string
	CreatedAt   time.Time
}

// FlightDetail is an owner's schedule layered over a catalog flight.
type FlightDetail struct {
	ID            int64     `json:"flightDetailId"`
	FlightID      int64     `json:"flightId"`
	FlightOwnerID int64     `json:"flightOwnerId"`
	FlightName    string    `json:"flightName"`
	BaggageInfo   string    `json:"baggageInfo"`
	NumberOfSeats int       `json:"numberOfSeats"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Fare          float64   `json:"fare"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (d *FlightDetail) Normalize() error {
	d.FlightName = strings.TrimSpace(d.FlightName)
	switch {
	case d.FlightID <= 0:
		return Validation("FlightId is required")
	case d.FlightName == "":
		return Validation("FlightName is required")
	case len(d.FlightName) > 100:
		return Validation("FlightName cannot exceed 100 characters")
	case len(d.BaggageInfo) > 200:
		return Validation("BaggageInfo cannot exceed 200 characters")
	case d.NumberOfSeats < 1 || d.NumberOfSeats > 1000:
		return Validation("NumberOfSeats must be between 1 and 1000")
	case d.Fare < 0:
		return Validation("Fare cannot be negative")
	case d.DepartureTime.IsZero() || d.ArrivalTime.IsZero():
		return Validation("DepartureTime and ArrivalTime are required")
	case !d.ArrivalTime.After(d.DepartureTime):
		return Validation("ArrivalTime must be after DepartureTime")
	}
	return nil
}

// FlightDetailView is a detail row joined with its catalog flight.
type FlightDetailView struct {
	FlightDetail
	FlightRoute string  `json:"flightRoute"`
	FlightPrice float64 `json:"flightPrice"`
}

// OwnerBooking is a booking on one of an owner's flights.
type OwnerBooking struct {
	BookingID      int64         `json:"bookingId"`
	UserID         int64         `json:"userId"`
	UserName       string        `json:"userName"`
	UserEmail      string        `json:"userEmail"`
	FlightID       int64         `json:"flightId"`
	FlightName     string        `json:"flightName"`
	BookingDate    time.Time     `json:"bookingDate"`
	PassengerCount int           `json:"passengerCount"`
	TotalAmount    float64       `json:"totalAmount"`
	Route          string        `json:"route"`
	SelectedSeats  string        `json:"selectedSeats"`
	TicketType     string        `json:"ticketType"`
	Status         BookingStatus `json:"status"`
}
