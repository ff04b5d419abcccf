package handler

import (
	"github.com/gin-gonic/gin"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/service"
	"lesson-tracker/pkg/response"
)

// SessionHandler 课次模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// ListSessions 获取课次列表
// GET /api/v1/sessions?course_id=xxx&show_future=true
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	response.OK(c, gin.H{"list": h.sessionSvc.List(c.Request.Context(), &req)})
}

// NextSessions 每门课的下一次课
// GET /api/v1/sessions/next
func (h *SessionHandler) NextSessions(c *gin.Context) {
	response.OK(c, gin.H{"list": h.sessionSvc.Next(c.Request.Context())})
}

// GetReplacementStatus 查询补课资格
// GET /api/v1/sessions/:id/replacement
func (h *SessionHandler) GetReplacementStatus(c *gin.Context) {
	status, err := h.sessionSvc.ReplacementStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleSessionError(c, err)
		return
	}

	response.OK(c, status)
}

// ScheduleReplacement 安排补课
// POST /api/v1/sessions/:id/replacement
func (h *SessionHandler) ScheduleReplacement(c *gin.Context) {
	replacement, err := h.sessionSvc.ScheduleReplacement(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleSessionError(c, err)
		return
	}

	response.Created(c, replacement)
}

// UpdateAttendance 更新或清除出勤
// PUT /api/v1/sessions/:id/attendance
func (h *SessionHandler) UpdateAttendance(c *gin.Context) {
	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	result, err := h.sessionSvc.UpdateAttendance(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleSessionError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateDate 修改课次日期
// PUT /api/v1/sessions/:id/date
func (h *SessionHandler) UpdateDate(c *gin.Context) {
	var req dto.UpdateSessionDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	session, err := h.sessionSvc.UpdateDate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteSession 删除课次
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	result, err := h.sessionSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleSessionError(c, err)
		return
	}

	response.OK(c, result)
}
