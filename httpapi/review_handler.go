package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/service"
)

// ReviewHandler translates review HTTP calls into service invocations.
type ReviewHandler struct {
	svc *service.ReviewService
}

// NewReviewHandler creates the handler around its service.
func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Register binds the review routes onto the API group.
func (h *ReviewHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/reviews")
	g.GET("/instrument/:id", h.listByInstrument)
	g.GET("/rating/:rating", h.listByRating)
	g.GET("/min-rating/:min", h.listByMinRating)
	g.GET("/author", h.searchByAuthor)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)
}

func (h *ReviewHandler) listByInstrument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	reviews, err := h.svc.GetByInstrument(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) listByRating(c *gin.Context) {
	rating, err := strconv.Atoi(c.Param("rating"))
	if err != nil || rating < 1 || rating > 5 {
		writeError(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	reviews, err := h.svc.GetByRating(c.Request.Context(), rating)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) listByMinRating(c *gin.Context) {
	min, err := strconv.Atoi(c.Param("min"))
	if err != nil || min < 1 || min > 5 {
		writeError(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}
	reviews, err := h.svc.GetByMinRating(c.Request.Context(), min)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) searchByAuthor(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "name is required")
		return
	}
	reviews, err := h.svc.SearchByAuthor(c.Request.Context(), name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) create(c *gin.Context) {
	var review catalog.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		writeError(c, http.StatusBadRequest, "malformed review payload")
		return
	}
	review.ID = 0
	created, err := h.svc.Create(c.Request.Context(), &review)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ReviewHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
