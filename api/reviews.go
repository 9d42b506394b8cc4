package api

import (
	"net/http"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/reviews"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service reviews.ReviewUseCase
}

type createReviewRequest struct {
	FlightID int64  `json:"flightId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func NewReviewHandler(service reviews.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) RegisterPublic(router gin.IRoutes) {
	router.GET("", h.list)
	router.GET("/flight/:id", h.listByFlight)
	router.GET("/:id", h.get)
}

func (h *ReviewHandler) Register(router *gin.RouterGroup) {
	router.POST("", RequireRoles(domain.RoleUser), h.create)
	router.DELETE("/:id", RequireRoles(domain.RoleAdmin), h.delete)
}

func (h *ReviewHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewHandler) listByFlight(c *gin.Context) {
	flightID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.service.ListByFlight(c.Request.Context(), flightID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	review, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	review := domain.Review{FlightID: req.FlightID, Rating: req.Rating, Comment: req.Comment}
	if err := h.service.Create(c.Request.Context(), caller(c), &review); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
