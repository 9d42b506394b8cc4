package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingStatusConfirmed         BookingStatus = "Confirmed"
	BookingStatusPending           BookingStatus = "Pending"
	BookingStatusCancelled         BookingStatus = "Cancelled"
	BookingStatusRequestedToCancel BookingStatus = "RequestedToCancel"
	BookingStatusRefunded          BookingStatus = "Refunded"
)

// bookingTransitions is the refund workflow. Admin overrides bypass it.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:           {BookingStatusRequestedToCancel},
	BookingStatusConfirmed:         {BookingStatusRequestedToCancel},
	BookingStatusRequestedToCancel: {BookingStatusRefunded, BookingStatusConfirmed},
	BookingStatusCancelled:         {},
	BookingStatusRefunded:          {BookingStatusRequestedToCancel},
}

// adminStatuses may be set directly by an administrator.
var adminStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusCancelled,
	BookingStatusPending,
	BookingStatusRefunded,
}

func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// HoldsSeats reports whether a booking in this status still occupies its seats.
func (s BookingStatus) HoldsSeats() bool {
	return s != BookingStatusCancelled && s != BookingStatusRefunded
}

func (s BookingStatus) AdminSettable() bool {
	for _, a := range adminStatuses {
		if a == s {
			return true
		}
	}
	return false
}

func AdminStatuses() []BookingStatus {
	out := make([]BookingStatus, len(adminStatuses))
	copy(out, adminStatuses)
	return out
}

func ReleasedStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusCancelled, BookingStatusRefunded}
}

// Transition applies the workflow step from current to target, or explains why not.
func Transition(current, target BookingStatus) error {
	if current.CanTransitionTo(target) {
		return nil
	}
	switch target {
	case BookingStatusRequestedToCancel:
		return Conflict("Booking is already %s", strings.ToLower(string(current)))
	case BookingStatusRefunded, BookingStatusConfirmed:
		if current != BookingStatusRequestedToCancel {
			return Conflict("Booking is not in cancellation request status")
		}
	}
	return Conflict("Booking cannot move from %s to %s", current, target)
}

const (
	MaxPassengersPerBooking = 10
	DefaultTicketType       = "Economy"
)

type Booking struct {
	ID            int64
	UserID        int64
	FlightID      int64
	FlightName    string
	Route         string
	SelectedSeats string
	Passengers    int
	TotalAmount   float64
	TicketType    string
	BookedAt      time.Time
	DepartureTime time.Time
	ArrivalTime   time.Time
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b *Booking) Seats() []string {
	return ParseSeats(b.SelectedSeats)
}

// UserSummary and FlightSummary are the joined parts of booking listings.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type FlightSummary struct {
	ID          int64   `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Price       float64 `json:"price"`
}

type BookingView struct {
	Booking
	User   *UserSummary
	Flight *FlightSummary
}

// BookingDetails is a booking together with its passenger roster.
type BookingDetails struct {
	BookingView
	Passengers []PassengerDetail
}

// StatusChange decides the next status of a locked booking row.
type StatusChange func(current *Booking) (BookingStatus, error)
