package api

import (
	"net/http"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightRequest struct {
	ID          int64   `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Price       float64 `json:"price"`
}

func (r flightRequest) flight() domain.Flight {
	return domain.Flight{ID: r.ID, Origin: r.Origin, Destination: r.Destination, Price: r.Price}
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// RegisterPublic mounts the catalog reads.
func (h *FlightHandler) RegisterPublic(router gin.IRoutes) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

// Register mounts the endpoints behind authentication.
func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/names", h.names)

	writers := router.Group("", RequireRoles(domain.RoleAdmin, domain.RoleFlightowner))
	writers.POST("", h.create)
	writers.PUT("/:id", h.update)
	writers.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) search(c *gin.Context) {
	list, err := h.service.Search(c.Request.Context(), domain.FlightSearch{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		SortBy:      domain.ParseFlightSort(c.Query("sortBy")),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) names(c *gin.Context) {
	names, err := h.service.Names(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	flight := req.flight()
	flight.ID = 0
	if err := h.service.Create(c.Request.Context(), &flight); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ID != 0 && req.ID != id {
		badRequest(c, "Flight ID mismatch")
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, req.flight())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully"})
}
