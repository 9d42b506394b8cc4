package domain

import (
	"strings"
	"time"
)

type Flight struct {
	ID          int64     `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Normalize trims the route fields and validates the record.
func (f *Flight) Normalize() error {
	f.Origin = strings.TrimSpace(f.Origin)
	f.Destination = strings.TrimSpace(f.Destination)
	if f.Origin == "" || f.Destination == "" {
		return Validation("Origin and Destination are required")
	}
	if f.Price <= 0 {
		return Validation("Price must be greater than 0")
	}
	return nil
}

type FlightSort string

const (
	SortByPrice       FlightSort = "price"
	SortByOrigin      FlightSort = "origin"
	SortByDestination FlightSort = "destination"
	SortByID          FlightSort = "id"
)

// ParseFlightSort falls back to price for anything unknown.
func ParseFlightSort(s string) FlightSort {
	switch FlightSort(strings.ToLower(strings.TrimSpace(s))) {
	case SortByOrigin:
		return SortByOrigin
	case SortByDestination:
		return SortByDestination
	case SortByID:
		return SortByID
	}
	return SortByPrice
}

type FlightSearch struct {
	Origin      string
	Destination string
	SortBy      FlightSort
}

// FlightName pairs a flight with the airline name shown to customers.
type FlightName struct {
	FlightID   int64  `json:"flightId"`
	FlightName string `json:"flightName"`
}
