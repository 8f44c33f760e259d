package status

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/", h.Root)
	r.GET("/import/health", h.Health)
	r.POST("/status", h.Create)
	r.GET("/status", h.List)
}
