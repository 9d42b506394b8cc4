package api

import (
	"net/http"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

type PassengerHandler struct {
	service passengers.PassengerUseCase
}

type passengerRequest struct {
	SeatNo         string `json:"seatNo"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	PassportNumber string `json:"passportNumber"`
	Nationality    string `json:"nationality"`
}

type savePassengersRequest struct {
	BookingID  int64              `json:"bookingId"`
	Passengers []passengerRequest `json:"passengers"`
}

func NewPassengerHandler(service passengers.PassengerUseCase) *PassengerHandler {
	return &PassengerHandler{service: service}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.POST("/details", h.save)
	router.GET("/booking/:id", h.listForBooking)
	router.DELETE("/booking/:id", h.deleteForBooking)
	router.DELETE("/:id", h.delete)
}

func (h *PassengerHandler) save(c *gin.Context) {
	var req savePassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	batch := make([]domain.PassengerDetail, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		batch = append(batch, domain.PassengerDetail{
			SeatNo:         p.SeatNo,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Age:            p.Age,
			Gender:         p.Gender,
			PassportNumber: p.PassportNumber,
			Nationality:    p.Nationality,
		})
	}

	saved, err := h.service.SaveDetails(c.Request.Context(), caller(c), req.BookingID, batch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Passenger details saved successfully",
		"bookingId":  req.BookingID,
		"passengers": saved,
	})
}

func (h *PassengerHandler) listForBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.service.ListForBooking(c.Request.Context(), caller(c), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PassengerHandler) deleteForBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.service.DeleteForBooking(c.Request.Context(), caller(c), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Passenger details deleted successfully", "deleted": deleted})
}

func (h *PassengerHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeletePassenger(c.Request.Context(), caller(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Passenger deleted successfully"})
}
