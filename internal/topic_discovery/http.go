package topic_discovery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type processRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// Process accepts the term via POST body or query string, matching the
// frontend's existing call sites.
func (h *Handler) Process(c *gin.Context) {
	term := c.Query("searchTerm")
	if c.Request.Method == http.MethodPost {
		var req processRequest
		if err := c.ShouldBindJSON(&req); err == nil && req.SearchTerm != "" {
			term = req.SearchTerm
		}
	}

	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "searchTerm is required"})
		return
	}

	res, err := h.svc.ProcessTopics(c.Request.Context(), term)
	if err != nil {
		h.log.Error("process topics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"message": "An error occurred while processing the request",
		})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	topics := rg.Group("/topics")
	topics.GET("/process", h.Process)
	topics.POST("/process", h.Process)
}
