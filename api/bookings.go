package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID      int64     `json:"flightId"`
	Flight        string    `json:"flight"`
	Route         string    `json:"route"`
	SelectedSeats string    `json:"selectedSeats"`
	Passengers    int       `json:"passengers"`
	TotalAmount   float64   `json:"totalAmount"`
	TicketType    string    `json:"ticketType"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
}

type bookingResponse struct {
	ID            int64     `json:"bookingId"`
	UserID        int64     `json:"userId"`
	FlightID      int64     `json:"flightId"`
	FlightName    string    `json:"flightName"`
	Route         string    `json:"route"`
	SelectedSeats string    `json:"selectedSeats"`
	Passengers    int       `json:"passengers"`
	TotalAmount   float64   `json:"totalAmount"`
	TicketType    string    `json:"ticketType"`
	BookingDate   time.Time `json:"bookingDate"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type bookingViewResponse struct {
	bookingResponse
	User   *domain.UserSummary   `json:"user,omitempty"`
	Flight *domain.FlightSummary `json:"flight,omitempty"`
}

type bookingDetailsResponse struct {
	bookingViewResponse
	PassengerDetails []domain.PassengerDetail `json:"passengerDetails"`
}

type bookedSeatsResponse struct {
	FlightID    int64    `json:"flightId"`
	BookedSeats []string `json:"bookedSeats"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", RequireRoles(domain.RoleUser), h.listMine)
	router.GET("/all", RequireRoles(domain.RoleAdmin, domain.RoleFlightowner), h.listAll)
	router.GET("/details/:id", h.details)
	router.GET("/flight/:id/seats", h.bookedSeats)
	router.PUT("/:id/request-cancel", h.requestCancel)
	router.DELETE("/:id", RequireRoles(domain.RoleAdmin), h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), caller(c), booking.CreateBookingInput{
		FlightID:      req.FlightID,
		Airline:       req.Flight,
		Route:         req.Route,
		SelectedSeats: req.SelectedSeats,
		Passengers:    req.Passengers,
		TotalAmount:   req.TotalAmount,
		TicketType:    req.TicketType,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Booking created successfully",
		"bookingId": created.ID,
		"booking":   newBookingResponse(created),
	})
}

func (h *BookingHandler) listMine(c *gin.Context) {
	views, err := h.service.ListMine(c.Request.Context(), caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingViewResponses(views))
}

func (h *BookingHandler) listAll(c *gin.Context) {
	views, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingViewResponses(views))
}

func (h *BookingHandler) details(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := h.service.GetDetails(c.Request.Context(), caller(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingDetailsResponse(details))
}

func (h *BookingHandler) bookedSeats(c *gin.Context) {
	flightID, ok := pathID(c, "id")
	if !ok {
		return
	}
	seats, err := h.service.BookedSeats(c.Request.Context(), flightID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookedSeatsResponse{FlightID: flightID, BookedSeats: seats})
}

func (h *BookingHandler) requestCancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	updated, err := h.service.RequestCancel(c.Request.Context(), caller(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Cancellation request submitted successfully",
		"booking": newBookingResponse(updated),
	})
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.service.DeleteBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully", "deletedPassengers": deleted})
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		FlightID:      b.FlightID,
		FlightName:    b.FlightName,
		Route:         b.Route,
		SelectedSeats: b.SelectedSeats,
		Passengers:    b.Passengers,
		TotalAmount:   b.TotalAmount,
		TicketType:    b.TicketType,
		BookingDate:   b.BookedAt,
		DepartureTime: b.DepartureTime,
		ArrivalTime:   b.ArrivalTime,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func newBookingViewResponse(v *domain.BookingView) bookingViewResponse {
	return bookingViewResponse{
		bookingResponse: newBookingResponse(&v.Booking),
		User:            v.User,
		Flight:          v.Flight,
	}
}

func newBookingViewResponses(views []domain.BookingView) []bookingViewResponse {
	out := make([]bookingViewResponse, 0, len(views))
	for i := range views {
		out = append(out, newBookingViewResponse(&views[i]))
	}
	return out
}

func newBookingDetailsResponse(d *domain.BookingDetails) bookingDetailsResponse {
	passengers := d.Passengers
	if passengers == nil {
		passengers = []domain.PassengerDetail{}
	}
	return bookingDetailsResponse{
		bookingViewResponse: newBookingViewResponse(&d.BookingView),
		PassengerDetails:    passengers,
	}
}
