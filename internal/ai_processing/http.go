package ai_processing

import (
	"errors"
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
	SelectedModel  string   `json:"selectedModel"`
	APIKey         string   `json:"apiKey"`
	CustomPrompt   string   `json:"customPrompt"`
	SelectedTopics []string `json:"selectedTopics"`
}

func (h *Handler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	suggestions, err := h.svc.ProcessTopics(c.Request.Context(), Request{
		Model:  req.SelectedModel,
		APIKey: req.APIKey,
		Prompt: req.CustomPrompt,
		Topics: req.SelectedTopics,
	})
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": vErr.Error()})
		case errors.Is(err, ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": err.Error()})
		default:
			h.log.Error("ai topic processing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": suggestions})
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	ai := rg.Group("/ai")
	ai.POST("/process", h.Process)
}
