package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	edges := rg.Group("/edges")
	edges.POST("/generate", h.Generate)
	edges.POST("/rebuild", h.Rebuild)

	rg.POST("/nodes/export", h.ExportNodes)
}
