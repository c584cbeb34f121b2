package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/service"
)

// CategoryHandler translates category HTTP calls into service invocations.
type CategoryHandler struct {
	svc *service.CategoryService
}

// NewCategoryHandler creates the handler around its service.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// Register binds the category routes onto the API group.
func (h *CategoryHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/categories")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.GET("/name/:name", h.getByName)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/search", h.search)
}

func (h *CategoryHandler) list(c *gin.Context) {
	categories, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	category, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if category == nil {
		writeError(c, http.StatusNotFound, "category not found")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) getByName(c *gin.Context) {
	category, err := h.svc.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if category == nil {
		writeError(c, http.StatusNotFound, "category not found")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) create(c *gin.Context) {
	var category catalog.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		writeError(c, http.StatusBadRequest, "malformed category payload")
		return
	}
	category.ID = 0
	created, err := h.svc.Create(c.Request.Context(), &category)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var category catalog.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		writeError(c, http.StatusBadRequest, "malformed category payload")
		return
	}
	category.ID = id
	updated, err := h.svc.Update(c.Request.Context(), &category)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) delete(c *gin.Context) {
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

func (h *CategoryHandler) search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "name is required")
		return
	}
	categories, err := h.svc.SearchByName(c.Request.Context(), name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
