package creation

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the import pipeline and gallery read paths.
// Static segments (stats/summary) are registered alongside the :id wildcard;
// gin resolves static children before params.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/import", h.Import)
	r.GET("/import/status", h.Status)

	items := r.Group("/gallery-items")
	{
		items.GET("", h.List)
		items.GET("/stats/summary", h.Stats)
		items.GET("/:id", h.Get)
		items.DELETE("/:id", h.Delete)
	}

	r.GET("/prompts", h.ListPrompts)
}
