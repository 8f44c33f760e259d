package assets

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"artbridge/internal/domain/creation"
	"artbridge/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Download triggers the asset cache for one gallery item.
func (h *Handler) Download(c *gin.Context) {
	result, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, creation.ErrItemNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "gallery item not found")
		case errors.Is(err, ErrUpstreamFetch), errors.Is(err, ErrNoRemoteMedia):
			response.Error(c, http.StatusBadGateway, "UPSTREAM_FETCH_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "download failed")
		}
		return
	}

	message := fmt.Sprintf("downloaded %d file(s)", result.Downloaded)
	if result.AlreadyCached {
		message = "already stored locally"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"downloaded":     result.Downloaded,
		"local_path":     result.LocalPath,
		"already_cached": result.AlreadyCached,
		"message":        message,
	})
}

// Serve streams a previously cached file. Content type comes from the file
// extension; there is no transcoding.
func (h *Handler) Serve(c *gin.Context) {
	path, err := h.service.Resolve(c.Param("id"), c.Param("filename"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "file not found")
		return
	}
	c.File(path)
}

// Stats reports how many items already have a local copy.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to compute download stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
