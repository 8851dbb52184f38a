package order

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	archive Archive
}

func NewHandler(archive Archive) *Handler {
	return &Handler{archive: archive}
}

// --------------------------------------------------
// Admin: recent orders with submission outcomes
// --------------------------------------------------
func (h *Handler) ListRecent(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := h.archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": records})
}

// --------------------------------------------------
// Admin: failed submissions awaiting replay
// --------------------------------------------------
func (h *Handler) ListFailed(c *gin.Context) {
	records, err := h.archive.ListFailed(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": records})
}
