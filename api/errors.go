package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "An unexpected error occurred."

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeError answers with the status of err's kind. Unknown errors are
// attached to the context for the request logger and hidden from the caller.
func writeError(c *gin.Context, err error) {
	var seats *domain.SeatConflictError
	if errors.As(err, &seats) {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error(), "conflictingSeats": seats.Seats})
		return
	}
	var passenger *domain.PassengerError
	if errors.As(err, &passenger) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "passenger": passenger.Position})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"message": internalErrorMessage})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// pathID parses a positive integer route parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
