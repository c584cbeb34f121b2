package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/harmonia/music-store/catalog"
	"github.com/harmonia/music-store/service"
)

// CustomerHandler translates customer HTTP calls into service invocations.
type CustomerHandler struct {
	svc *service.CustomerService
}

// NewCustomerHandler creates the handler around its service.
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Register binds the customer routes onto the API group.
func (h *CustomerHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/customers")
	g.GET("", h.list)
	g.GET("/:id", h.getByID)
	g.GET("/email/:email", h.getByEmail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/search", h.search)
	g.GET("/status/:status", h.listByStatus)
	g.GET("/loyalty/:minPoints", h.listByLoyaltyPoints)
	g.PATCH("/:id/purchase", h.addPurchase)
	g.PATCH("/:id/loyalty", h.addLoyaltyPoints)
	g.PATCH("/:id/status", h.updateStatus)
}

func (h *CustomerHandler) list(c *gin.Context) {
	customers, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if customer == nil {
		writeError(c, http.StatusNotFound, "customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) getByEmail(c *gin.Context) {
	customer, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if customer == nil {
		writeError(c, http.StatusNotFound, "customer not found")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) create(c *gin.Context) {
	var customer catalog.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		writeError(c, http.StatusBadRequest, "malformed customer payload")
		return
	}
	customer.ID = 0
	created, err := h.svc.Create(c.Request.Context(), &customer)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CustomerHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var customer catalog.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		writeError(c, http.StatusBadRequest, "malformed customer payload")
		return
	}
	customer.ID = id
	updated, err := h.svc.Update(c.Request.Context(), &customer)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CustomerHandler) delete(c *gin.Context) {
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

func (h *CustomerHandler) search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		writeError(c, http.StatusBadRequest, "name is required")
		return
	}
	customers, err := h.svc.SearchByName(c.Request.Context(), name)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) listByStatus(c *gin.Context) {
	status, err := catalog.ParseCustomerStatus(c.Param("status"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unknown customer status")
		return
	}
	customers, err := h.svc.GetByStatus(c.Request.Context(), status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) listByLoyaltyPoints(c *gin.Context) {
	minPoints, err := strconv.Atoi(c.Param("minPoints"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid minPoints")
		return
	}
	customers, err := h.svc.GetByMinLoyaltyPoints(c.Request.Context(), minPoints)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) addPurchase(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || amount.IsNegative() {
		writeError(c, http.StatusBadRequest, "invalid amount")
		return
	}
	if err := h.svc.AddPurchase(c.Request.Context(), id, amount); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *CustomerHandler) addLoyaltyPoints(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	points, err := strconv.Atoi(c.Query("points"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid points")
		return
	}
	if err := h.svc.AddLoyaltyPoints(c.Request.Context(), id, points); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *CustomerHandler) updateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	status, err := catalog.ParseCustomerStatus(c.Query("status"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "unknown customer status")
		return
	}
	if err := h.svc.UpdateStatus(c.Request.Context(), id, status); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
