package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/criteria"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/domain"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/service"
)

type Handler struct {
	svc *service.Service
	log *zap.Logger
}

func NewHandler(svc *service.Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(req.Topics) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "topics are required"})
		return
	}

	cfg := req.Criteria.Apply(criteria.Default())
	res, err := h.svc.GenerateWithCriteria(c.Request.Context(), req.Topics, cfg)
	if err != nil {
		h.fail(c, "generate edges", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"stats":      res.Stats,
		"statistics": res.Statistics,
		"gexf_path":  res.GEXFPath,
	})
}

func (h *Handler) Rebuild(c *gin.Context) {
	var req RebuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	cfg := req.Criteria.Apply(criteria.DefaultRebuild())
	res, err := h.svc.RebuildEdges(req.toGraph(), cfg)
	if err != nil {
		h.fail(c, "rebuild edges", err)
		return
	}

	if res.Message != "" {
		c.JSON(http.StatusOK, gin.H{"message": res.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"stats":      res.Stats,
		"statistics": h.svc.Describe(res.Graph),
	})
}

func (h *Handler) ExportNodes(c *gin.Context) {
	var req ExportNodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(req.Topics) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "topics are required"})
		return
	}

	path, count, err := h.svc.ExportNodes(c.Request.Context(), req.Topics)
	if err != nil {
		h.fail(c, "export nodes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"gexf_path":   path,
		"total_nodes": count,
	})
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrNoCriteriaEnabled) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	h.log.Error(op, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
