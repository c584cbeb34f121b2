package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harmonia/music-store/service"
)

// Services groups the per-entity services the router exposes.
type Services struct {
	Instruments *service.InstrumentService
	Customers   *service.CustomerService
	Categories  *service.CategoryService
	Reviews     *service.ReviewService
}

// NewRouter assembles the gin engine with all catalog routes under /api/v1.
func NewRouter(svcs Services, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	NewInstrumentHandler(svcs.Instruments).Register(api)
	NewCustomerHandler(svcs.Customers).Register(api)
	NewCategoryHandler(svcs.Categories).Register(api)
	NewReviewHandler(svcs.Reviews).Register(api)

	return router
}
