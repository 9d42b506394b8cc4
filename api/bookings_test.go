package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	dep := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	req := createBookingRequest{
		FlightID:      1,
		Route:         "NYC → LAX",
		SelectedSeats: "7A,8B",
		Passengers:    2,
		TotalAmount:   599.98,
		DepartureTime: dep,
		ArrivalTime:   dep.Add(6 * time.Hour),
	}
	c, w := newTestContext(t, http.MethodPost, "/api/bookings", req, &alice)

	input := booking.CreateBookingInput{
		FlightID:      1,
		Route:         "NYC → LAX",
		SelectedSeats: "7A,8B",
		Passengers:    2,
		TotalAmount:   599.98,
		DepartureTime: dep,
		ArrivalTime:   dep.Add(6 * time.Hour),
	}
	created := &domain.Booking{
		ID:            101,
		UserID:        alice.UserID,
		FlightID:      1,
		FlightName:    "SimplyFly Airlines",
		Route:         "NYC → LAX",
		SelectedSeats: "7A,8B",
		Passengers:    2,
		TotalAmount:   599.98,
		TicketType:    domain.DefaultTicketType,
		Status:        domain.BookingStatusConfirmed,
	}
	mockService.On("CreateBooking", mock.Anything, alice, input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response struct {
		BookingID int64           `json:"bookingId"`
		Booking   bookingResponse `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(101), response.BookingID)
	assert.Equal(t, "Confirmed", response.Booking.Status)
	assert.Equal(t, "7A,8B", response.Booking.SelectedSeats)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_SeatConflict(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, http.MethodPost, "/api/bookings", createBookingRequest{FlightID: 1, SelectedSeats: "8B,9C"}, &alice)
	mockService.On("CreateBooking", mock.Anything, alice, mock.Anything).
		Return(nil, &domain.SeatConflictError{FlightID: 1, Seats: []string{"8B"}})

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, []any{"8B"}, body["conflictingSeats"])
	assert.Equal(t, "The following seats are already booked: 8B", body["message"])
}

func TestBookingHandler_create_BadJSON(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, http.MethodPost, "/api/bookings", "{not json", &alice)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_requestCancel(t *testing.T) {
	testCases := []struct {
		name       string
		result     *domain.Booking
		err        error
		wantStatus int
	}{
		{
			name:       "pending cancellation",
			result:     &domain.Booking{ID: 5, Status: domain.BookingStatusRequestedToCancel},
			wantStatus: http.StatusOK,
		},
		{
			name:       "already requested",
			err:        domain.Conflict("Booking is already requestedtocancel"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "someone else's booking",
			err:        domain.Forbidden("You can only cancel your own bookings."),
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)
			c, w := newTestContext(t, http.MethodPut, "/api/bookings/5/request-cancel", nil, &alice, gin.Param{Key: "id", Value: "5"})

			if tc.err != nil {
				mockService.On("RequestCancel", mock.Anything, alice, int64(5)).Return(nil, tc.err)
			} else {
				mockService.On("RequestCancel", mock.Anything, alice, int64(5)).Return(tc.result, nil)
			}

			handler.requestCancel(c)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.err != nil {
				assert.Equal(t, tc.err.Error(), decode(t, w)["message"])
			}
		})
	}
}

func TestBookingHandler_details(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, http.MethodGet, "/api/bookings/details/5", nil, &alice, gin.Param{Key: "id", Value: "5"})
	details := &domain.BookingDetails{
		BookingView: domain.BookingView{
			Booking: domain.Booking{ID: 5, UserID: alice.UserID, Status: domain.BookingStatusConfirmed},
			Flight:  &domain.FlightSummary{ID: 1, Origin: "NYC", Destination: "LAX", Price: 299.99},
		},
	}
	mockService.On("GetDetails", mock.Anything, alice, int64(5)).Return(details, nil)

	handler.details(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response bookingDetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(5), response.ID)
	assert.Equal(t, "NYC", response.Flight.Origin)
	assert.NotNil(t, response.PassengerDetails)
	assert.Empty(t, response.PassengerDetails)
}

func TestBookingHandler_details_InvalidID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, http.MethodGet, "/api/bookings/details/abc", nil, &alice, gin.Param{Key: "id", Value: "abc"})

	handler.details(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_bookedSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, http.MethodGet, "/api/bookings/flight/1/seats", nil, &alice, gin.Param{Key: "id", Value: "1"})
	mockService.On("BookedSeats", mock.Anything, int64(1)).Return([]string{"7A", "8B"}, nil)

	handler.bookedSeats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response bookedSeatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, []string{"7A", "8B"}, response.BookedSeats)
}

func TestBookingHandler_delete(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext(t, http.MethodDelete, "/api/bookings/5", nil, &root, gin.Param{Key: "id", Value: "5"})
	mockService.On("DeleteBooking", mock.Anything, int64(5)).Return(int64(2), nil)

	handler.delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["deletedPassengers"])
}
