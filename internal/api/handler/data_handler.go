package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/service"
)

// DataHandler 整体快照读写处理器
// 响应不使用统一信封，保持与旧前端约定的裸 JSON
type DataHandler struct {
	dataSvc service.DataService
}

// NewDataHandler 创建 DataHandler
func NewDataHandler(dataSvc service.DataService) *DataHandler {
	return &DataHandler{dataSvc: dataSvc}
}

// GetData 读取完整快照
// GET /api/data
func (h *DataHandler) GetData(c *gin.Context) {
	c.JSON(http.StatusOK, h.dataSvc.Get(c.Request.Context()))
}

// ReplaceData 整体覆盖快照
// POST /api/data
func (h *DataHandler) ReplaceData(c *gin.Context) {
	var req dto.ReplaceDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	h.dataSvc.Replace(c.Request.Context(), &req)
	c.JSON(http.StatusOK, dto.AckResponse{Success: true})
}
