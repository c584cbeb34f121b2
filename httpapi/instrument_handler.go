package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/service"
)

// InstrumentHandler translates instrument HTTP calls into service invocations.
type InstrumentHandler struct {
	svc *service.InstrumentService
}

// NewInstrumentHandler creates the handler around its service.
func NewInstrumentHandler(svc *service.InstrumentService) *InstrumentHandler {
	return &InstrumentHandler{svc: svc}
}

// Register binds the instrument routes onto the API group.
func (h *InstrumentHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/instruments")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/search", h.search)
	g.GET("/type/:type", h.listByType)
	g.GET("/condition/:condition", h.listByCondition)
	g.GET("/brand/:brand", h.listByBrandAndType)
	g.GET("/price-range", h.listByPriceRange)
	g.GET("/in-stock", h.listInStock)
	g.GET("/out-of-stock", h.listOutOfStock)
	g.GET("/paginated", h.listPaginated)
	g.PATCH("/:id/stock", h.updateStock)
	g.PATCH("/:id/add-stock", h.addStock)
	g.GET("/count/type/:type", h.countByType)
}

func (h *InstrumentHandler) list(c *gin.Context) {
	items, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstrumentHandler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inst, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if inst == nil {
		writeError(c, http.StatusNotFound, "instrument not found")
		return
	}
	c.JSON(http.StatusOK, inst)
}

func (h *InstrumentHandler) create(c *gin.Context) {
	var inst catalog.Instrument
	if err := c.ShouldBindJSON(&inst); err != nil {
		writeError(c, http.StatusBadRequest, "malformed instrument payload")
		return
	}
	inst.ID = 0
	created, err := h.svc.Create(c.Request.Context(), &inst)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *InstrumentHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var inst catalog.Instrument
	if err := c.ShouldBindJSON(&inst); err != nil {
		writeError(c, http.StatusBadRequest, "malformed instrument payload")
		return
	}
	inst.ID = id
	updated, err := h.svc.Update(c.Request.Context(), &inst)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *InstrumentHandler) delete(c *gin.Context) {
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

func (h *InstrumentHandler) search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "name is required")
		return
	}
	items, err := h.svc.SearchByName(c.Request.Context(), name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstrumentHandler) listByType(c *gin.Context) {
	t, err := catalog.ParseInstrumentType(c.Param("type"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unknown instrument type")
		return
	}
	items, err := h.svc.GetByType(c.Request.Context(), t)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstrumentHandler) listByCondition(c *gin.Context) {
	cond, err := catalog.ParseCondition(c.Param("condition"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unknown condition")
		return
	}
	items, err := h.svc.GetByCondition(c.Request.Context(), cond)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// listByBrandAndType serves /brand/:brand?type=GUITAR as an exact-match
// combined search, falling back to a brand substring search without type.
func (h *InstrumentHandler) listByBrandAndType(c *gin.Context) {
	brand := c.Param("brand")
	if typeParam := c.Query("type"); typeParam != "" {
		t, err := catalog.ParseInstrumentType(typeParam)
		if err != nil {
			writeError(c, http.StatusBadRequest, "unknown instrument type")
			return
		}
		items, err := h.svc.GetByBrandAndType(c.Request.Context(), brand, t)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}
	items, err := h.svc.SearchByBrand(c.Request.Context(), brand)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstrumentHandler) listByPriceRange(c *gin.Context) {
	min, err := decimal.NewFromString(c.Query("minPrice"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid minPrice")
		return
	}
	max, err := decimal.NewFromString(c.Query("maxPrice"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid maxPrice")
		return
	}

	if typeParam := c.Query("type"); typeParam != "" {
		t, err := catalog.ParseInstrumentType(typeParam)
		if err != nil {
			writeError(c, http.StatusBadRequest, "unknown instrument type")
			return
		}
		items, err := h.svc.GetByTypeAndPriceRange(c.Request.Context(), t, min, max)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
		return
	}

	items, err := h.svc.GetByPriceRange(c.Request.Context(), min, max)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstrumentHandler) listInStock(c *gin.Context) {
	items, err := h.svc.GetInStock(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstrumentHandler) listOutOfStock(c *gin.Context) {
	items, err := h.svc.GetOutOfStock(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InstrumentHandler) listPaginated(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		writeError(c, http.StatusBadRequest, "invalid page")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		writeError(c, http.StatusBadRequest, "invalid size")
		return
	}
	sortField := c.DefaultQuery("sort", "name")

	result, err := h.svc.GetPage(c.Request.Context(), page, size, sortField)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InstrumentHandler) updateStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid quantity")
		return
	}
	if err := h.svc.UpdateStock(c.Request.Context(), id, quantity); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *InstrumentHandler) addStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid quantity")
		return
	}
	if err := h.svc.AddStock(c.Request.Context(), id, quantity); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *InstrumentHandler) countByType(c *gin.Context) {
	t, err := catalog.ParseInstrumentType(c.Param("type"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unknown instrument type")
		return
	}
	count, err := h.svc.CountByType(c.Request.Context(), t)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": t, "count": count})
}
