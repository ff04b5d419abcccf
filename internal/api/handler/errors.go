package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lesson-tracker/internal/service"
	"lesson-tracker/pkg/response"
)

// 业务错误码
const (
	CodeCourseNotFound     = 20001
	CodeInvalidDateRange   = 20002
	CodeSessionNotFound    = 30001
	CodeReplacementDenied  = 30002
	CodeReplacementBudget  = 30003
	CodeNoReplacementSlot  = 30004
	CodeConfirmRequired    = 30005
	CodeExportNoSessions   = 40001
	CodeExportGenerateFail = 40002
)

// bindFailed 统一处理请求绑定失败：超出大小限制返回 413，其余返回 400
func bindFailed(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
}

func handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, CodeCourseNotFound, "课程不存在")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, CodeInvalidDateRange, "截止日期不能早于开始日期")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

func handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, CodeSessionNotFound, "课次不存在")
	case errors.Is(err, service.ErrReplacementNotAllowed):
		response.UnprocessableEntity(c, CodeReplacementDenied, "该课次不符合补课条件")
	case errors.Is(err, service.ErrReplacementBudgetExhausted):
		response.UnprocessableEntity(c, CodeReplacementBudget, "课程补课额度已用完")
	case errors.Is(err, service.ErrNoReplacementSlot):
		response.UnprocessableEntity(c, CodeNoReplacementSlot, "100 天内没有可安排补课的上课日")
	case errors.Is(err, service.ErrReplacementConfirmRequired):
		response.Conflict(c, CodeConfirmRequired, "该课次已安排补课，修改出勤会删除补课，请携带 confirm=true 重试")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, CodeCourseNotFound, "课程不存在")
	case errors.Is(err, service.ErrExportNoSessions):
		response.NotFound(c, CodeExportNoSessions, "暂无可导出的课次")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, CodeExportGenerateFail, "生成导出文件失败")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
