package status

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"artbridge/internal/pkg/response"
)

// ServiceName appears in the banner and health responses.
const ServiceName = "ArtBridge Data Bridge"

const listLimit = 1000

// Handler serves the banner, the health probe and the status-check records.
// Small enough that it talks to gorm directly, without a service layer.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": ServiceName})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type createRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "client_name is required")
		return
	}

	check := StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&check).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to record status check")
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *Handler) List(c *gin.Context) {
	var checks []StatusCheck
	err := h.db.WithContext(c.Request.Context()).
		Order("timestamp DESC").Limit(listLimit).Find(&checks).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list status checks")
		return
	}
	c.JSON(http.StatusOK, checks)
}
