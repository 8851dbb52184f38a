package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store          *Store
	restaurantName string
}

func NewHandler(store *Store, restaurantName string) *Handler {
	return &Handler{store: store, restaurantName: restaurantName}
}

// --------------------------------------------------
// Full menu, category order preserved
// --------------------------------------------------
func (h *Handler) GetMenu(c *gin.Context) {
	cat := h.store.Current()

	categories := make([]gin.H, 0, len(cat.Categories()))
	for _, name := range cat.Categories() {
		categories = append(categories, gin.H{
			"name":  name,
			"items": cat.CategoryItems(name),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": h.restaurantName,
		"categories": categories,
	})
}

// --------------------------------------------------
// Name search (?q=)
// --------------------------------------------------
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	items := h.store.Current().Search(query)
	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"items": items,
	})
}

// --------------------------------------------------
// Exact item lookup with voice description
// --------------------------------------------------
func (h *Handler) GetItem(c *gin.Context) {
	cat := h.store.Current()

	item, ok := cat.FindExact(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":        item,
		"description": cat.Describe(item),
	})
}

// --------------------------------------------------
// Tag filter (vegetarian, spicy, ...)
// --------------------------------------------------
func (h *Handler) GetByTag(c *gin.Context) {
	items := h.store.Current().ItemsByTag(c.Param("tag"))
	c.JSON(http.StatusOK, gin.H{
		"tag":   c.Param("tag"),
		"items": items,
	})
}

// --------------------------------------------------
// Popular recommendations
// --------------------------------------------------
func (h *Handler) GetPopular(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.store.Current().Popular(5),
	})
}

// --------------------------------------------------
// All-you-can-eat pricing passthrough
// --------------------------------------------------
func (h *Handler) GetAyce(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ayce_pricing": h.store.Current().Ayce(),
	})
}

// --------------------------------------------------
// Admin: reload menu from source
// --------------------------------------------------
func (h *Handler) Reload(c *gin.Context) {
	cat, err := h.store.Reload()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "menu reloaded",
		"items":   cat.Len(),
	})
}
