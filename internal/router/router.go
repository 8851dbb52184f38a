package router

import (
	"time"

	"dialdish/internal/auth"
	"dialdish/internal/call"
	"dialdish/internal/catalog"
	"dialdish/internal/middleware"
	"dialdish/internal/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *auth.Handler
	Call    *call.Handler
	Catalog *catalog.Handler
	Orders  *order.Handler
}

func New(h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── CALL LIFECYCLE ─────────────────────────
	// Posted by the audio/telephony pipeline (out of core scope).
	calls := r.Group("/calls")
	{
		calls.POST("/:id/connected", h.Call.Connected)
		calls.POST("/:id/utterances", h.Call.Utterance)
		calls.POST("/:id/disconnected", h.Call.Disconnected)
	}

	// ───────────────────────── MENU (PUBLIC) ─────────────────────────
	menu := r.Group("/menu")
	{
		menu.GET("", h.Catalog.GetMenu)
		menu.GET("/search", h.Catalog.Search)
		menu.GET("/items/:name", h.Catalog.GetItem)
		menu.GET("/tags/:tag", h.Catalog.GetByTag)
		menu.GET("/popular", h.Catalog.GetPopular)
		menu.GET("/ayce", h.Catalog.GetAyce)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	r.POST("/admin/login", h.Auth.Login)

	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("ADMIN"),
	)
	{
		admin.POST("/menu/reload", h.Catalog.Reload)
		admin.GET("/orders", h.Orders.ListRecent)
		admin.GET("/orders/failed", h.Orders.ListFailed)
	}

	return r
}
