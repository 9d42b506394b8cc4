package domain

import "strings"

// ParseSeats splits a comma-separated seat list, trimming blanks and
// dropping empty and repeated codes. Order is preserved.
func ParseSeats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

func JoinSeats(seats []string) string {
	return strings.Join(seats, ",")
}

// OccupiedSeats flattens the seat lists of existing bookings.
func OccupiedSeats(seatLists []string) []string {
	var out []string
	for _, s := range seatLists {
		out = append(out, ParseSeats(s)...)
	}
	return out
}

// SeatConflicts returns the requested seats that are already occupied,
// in request order.
func SeatConflicts(requested, occupied []string) []string {
	if len(requested) == 0 || len(occupied) == 0 {
		return nil
	}
	taken := make(map[string]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s] = struct{}{}
	}
	var conflicts []string
	for _, s := range requested {
		if _, ok := taken[s]; ok {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}

// SeatCheck inspects the seats already occupied on a flight before a new
// booking is written. A non-nil error aborts the write.
type SeatCheck func(occupied []string) error

// RequireFreeSeats builds a SeatCheck that rejects any overlap with requested.
func RequireFreeSeats(flightID int64, requested []string) SeatCheck {
	return func(occupied []string) error {
		if conflicts := SeatConflicts(requested, occupied); len(conflicts) > 0 {
			return &SeatConflictError{FlightID: flightID, Seats: conflicts}
		}
		return nil
	}
}
