package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/harmonia/music-store/catalog"
)

// writeError emits the uniform error envelope.
func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// writeServiceError maps the error taxonomy onto status codes: malformed
// input is the client's fault (400), a missing target is 404, anything else
// is a storage or conflict failure reported as 500. No retries; the failure
// is terminal for this call.
func writeServiceError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs})
		return
	}
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(c, http.StatusNotFound, "not found")
		return
	}
	writeError(c, http.StatusInternalServerError, err.Error())
}

// pathID parses the :id path parameter, replying 400 itself on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
