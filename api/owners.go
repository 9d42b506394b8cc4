package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/booking"
	"github.com/Domenick1991/simplyfly/internal/service/owners"
	"github.com/gin-gonic/gin"
)

type OwnerHandler struct {
	owners   owners.OwnerUseCase
	bookings booking.BookingUseCase
}

type flightDetailRequest struct {
	FlightID      int64     `json:"flightId"`
	FlightName    string    `json:"flightName"`
	BaggageInfo   string    `json:"baggageInfo"`
	NumberOfSeats int       `json:"numberOfSeats"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Fare          float64   `json:"fare"`
}

func (r flightDetailRequest) detail() domain.FlightDetail {
	return domain.FlightDetail{
		FlightID:      r.FlightID,
		FlightName:    r.FlightName,
		BaggageInfo:   r.BaggageInfo,
		NumberOfSeats: r.NumberOfSeats,
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		Fare:          r.Fare,
	}
}

func NewOwnerHandler(owners owners.OwnerUseCase, bookings booking.BookingUseCase) *OwnerHandler {
	return &OwnerHandler{owners: owners, bookings: bookings}
}

func (h *OwnerHandler) Register(router *gin.RouterGroup) {
	router.GET("/flight-details/:id", h.listDetails)
	router.POST("/flight-details", h.createDetail)
	router.PUT("/flight-details/:id", h.updateDetail)
	router.DELETE("/flight-details/:id", h.deleteDetail)

	router.GET("/bookings/:id", h.listBookings)
	router.PUT("/bookings/:id/approve-refund", RequireRoles(domain.RoleFlightowner), h.approveRefund)
	router.PUT("/bookings/:id/reject-refund", RequireRoles(domain.RoleFlightowner), h.rejectRefund)
}

func (h *OwnerHandler) listDetails(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := h.owners.ListDetails(c.Request.Context(), caller(c), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *OwnerHandler) createDetail(c *gin.Context) {
	var req flightDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	detail := req.detail()
	if err := h.owners.CreateDetail(c.Request.Context(), caller(c), &detail); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *OwnerHandler) updateDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req flightDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	detail, err := h.owners.UpdateDetail(c.Request.Context(), caller(c), id, req.detail())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *OwnerHandler) deleteDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.owners.DeleteDetail(c.Request.Context(), caller(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight detail deleted successfully"})
}

func (h *OwnerHandler) listBookings(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.owners.ListBookings(c.Request.Context(), caller(c), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OwnerHandler) approveRefund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	updated, err := h.bookings.ApproveRefund(c.Request.Context(), caller(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Refund approved successfully",
		"refundAmount": updated.TotalAmount,
		"booking":      newBookingResponse(updated),
	})
}

func (h *OwnerHandler) rejectRefund(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	updated, err := h.bookings.RejectRefund(c.Request.Context(), caller(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Refund request rejected",
		"booking": newBookingResponse(updated),
	})
}
