package handler

import (
	"github.com/gin-gonic/gin"

	"lesson-tracker/internal/service"
	"lesson-tracker/pkg/response"
)

// StatsHandler 统计模块 HTTP 处理器
type StatsHandler struct {
	statsSvc service.StatsService
}

// NewStatsHandler 创建 StatsHandler
func NewStatsHandler(statsSvc service.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// GetStats 按课程名分组的统计
// GET /api/v1/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	response.OK(c, gin.H{"list": h.statsSvc.Aggregate(c.Request.Context())})
}
