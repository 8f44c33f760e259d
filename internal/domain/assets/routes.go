package assets

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the asset cache trigger, the download stats and the
// cached-file server. The gallery-items group is shared with the creation
// domain; gin merges the route trees.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	items := r.Group("/gallery-items")
	{
		items.GET("/download/stats", h.Stats)
		items.POST("/:id/download", h.Download)
	}

	r.GET("/downloads/:id/:filename", h.Serve)
}
