package api

import (
	"net/http"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/booking"
	"github.com/Domenick1991/simplyfly/internal/service/identity"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes administrative overrides. Flight writes reuse the
// catalog handler so both surfaces share validation and cache invalidation.
type AdminHandler struct {
	flights  *FlightHandler
	users    identity.IdentityUseCase
	bookings booking.BookingUseCase
}

type roleRequest struct {
	Role string `json:"role"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewAdminHandler(flights *FlightHandler, users identity.IdentityUseCase, bookings booking.BookingUseCase) *AdminHandler {
	return &AdminHandler{flights: flights, users: users, bookings: bookings}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	adminOnly := RequireRoles(domain.RoleAdmin)
	writers := RequireRoles(domain.RoleAdmin, domain.RoleFlightowner)

	router.GET("/flights", adminOnly, h.flights.list)
	router.GET("/flight/:id", adminOnly, h.flights.get)
	router.POST("/flight", writers, h.flights.create)
	router.PUT("/flight/:id", writers, h.flights.update)
	router.DELETE("/flight/:id", writers, h.flights.delete)

	router.GET("/users", adminOnly, h.listUsers)
	router.PUT("/user/:id/role", adminOnly, h.updateRole)
	router.DELETE("/user/:id", adminOnly, h.deleteUser)

	router.GET("/bookings", adminOnly, h.listBookings)
	router.GET("/bookings/:id", adminOnly, h.bookingDetails)
	router.PUT("/bookings/:id/status", adminOnly, h.setStatus)
	router.PUT("/booking/:id/cancel", adminOnly, h.cancelBooking)
	router.DELETE("/booking/:id", adminOnly, h.deleteBooking)
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) updateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.users.UpdateRole(c.Request.Context(), id, domain.Role(req.Role))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user": newUserResponse(user)})
}

func (h *AdminHandler) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), caller(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	views, err := h.bookings.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingViewResponses(views))
}

func (h *AdminHandler) bookingDetails(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := h.bookings.GetAnyDetails(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingDetailsResponse(details))
}

func (h *AdminHandler) setStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	h.override(c, id, domain.BookingStatus(req.Status), "Booking status updated successfully")
}

func (h *AdminHandler) cancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.override(c, id, domain.BookingStatusCancelled, "Booking cancelled successfully")
}

func (h *AdminHandler) override(c *gin.Context, id int64, status domain.BookingStatus, message string) {
	updated, err := h.bookings.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "booking": newBookingResponse(updated)})
}

func (h *AdminHandler) deleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.bookings.DeleteBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully", "deletedPassengers": deleted})
}
