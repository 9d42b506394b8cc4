package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeats(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "blank", input: "   ", expected: nil},
		{name: "single", input: "7A", expected: []string{"7A"}},
		{name: "spaces", input: " 7A, 8B ,9C", expected: []string{"7A", "8B", "9C"}},
		{name: "empty entries", input: "7A,,8B,", expected: []string{"7A", "8B"}},
		{name: "duplicates", input: "7A,8B,7A", expected: []string{"7A", "8B"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseSeats(tc.input))
		})
	}
}

func TestOccupiedSeats(t *testing.T) {
	occupied := OccupiedSeats([]string{"7A, 8B", "", "12C"})
	assert.Equal(t, []string{"7A", "8B", "12C"}, occupied)
}

func TestSeatConflicts(t *testing.T) {
	occupied := []string{"7A", "8B"}

	assert.Equal(t, []string{"8B"}, SeatConflicts([]string{"8B", "9C"}, occupied))
	assert.Nil(t, SeatConflicts([]string{"9C"}, occupied))
	assert.Nil(t, SeatConflicts(nil, occupied))
	assert.Nil(t, SeatConflicts([]string{"7A"}, nil))
	assert.Equal(t, []string{"8B", "7A"}, SeatConflicts([]string{"8B", "1A", "7A"}, occupied))
}

func TestRequireFreeSeats(t *testing.T) {
	check := RequireFreeSeats(3, []string{"8B", "9C"})

	err := check([]string{"7A", "8B"})
	require.Error(t, err)

	var conflict *SeatConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(3), conflict.FlightID)
	assert.Equal(t, []string{"8B"}, conflict.Seats)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "The following seats are already booked: 8B", err.Error())

	assert.NoError(t, check([]string{"1A"}))
}
