package creation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artbridge/internal/pkg/response"
	"artbridge/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Import accepts one creation payload from the capture extension.
// Duplicates are a success, not an error.
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid import payload: "+err.Error())
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid import payload", fields)
		return
	}

	result, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "import failed")
		return
	}

	message := "creation imported"
	if result.Duplicate {
		message = "already imported"
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"id":        result.ID,
		"prompt_id": result.PromptID,
		"duplicate": result.Duplicate,
		"message":   message,
	})
}

// Status handles the extension's pre-import poll.
func (h *Handler) Status(c *gin.Context) {
	creationID := c.Query("creationId")
	if creationID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "creationId query parameter is required")
		return
	}
	status, err := h.service.Status(c.Request.Context(), creationID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "status check failed")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list gallery items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "gallery item not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to load gallery item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "gallery item not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListPrompts(c *gin.Context) {
	prompts, err := h.service.ListPrompts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list prompts")
		return
	}
	c.JSON(http.StatusOK, prompts)
}
