package dto

import "lesson-tracker/internal/model"

// ── 课次模块 DTO ──

// SessionListRequest 课次列表查询参数
type SessionListRequest struct {
	CourseID   string `form:"course_id"   binding:"omitempty,max=64"`
	ShowFuture bool   `form:"show_future"`
}

// SessionResponse 课次响应；IsNext 标记所属课程的下一次课
type SessionResponse struct {
	model.Session
	IsNext bool `json:"isNext"`
}

// UpdateAttendanceRequest 更新出勤请求；status 为空表示清除出勤
// 课次已链接补课时，改为非缺勤需携带 confirm=true
type UpdateAttendanceRequest struct {
	Status  string `json:"status"  binding:"omitempty,oneof=present absent"`
	Reason  string `json:"reason"  binding:"omitempty,oneof=personal provider holiday external other"`
	Details string `json:"details" binding:"omitempty,max=500"`
	Confirm bool   `json:"confirm"`
}

// ToRecord 转换为出勤记录，清除时返回 nil
func (r *UpdateAttendanceRequest) ToRecord() *model.AttendanceRecord {
	if r.Status == "" {
		return nil
	}
	return &model.AttendanceRecord{
		Status:  model.AttendanceStatus(r.Status),
		Reason:  model.AbsenceReason(r.Reason),
		Details: r.Details,
	}
}

// UpdateAttendanceResponse 更新出勤响应
type UpdateAttendanceResponse struct {
	Session              model.Session `json:"session"`
	RemovedReplacementID string        `json:"removedReplacementId,omitempty"`
}

// UpdateSessionDateRequest 修改课次日期请求
type UpdateSessionDateRequest struct {
	Date string `json:"date" binding:"required,isodate"`
}

// ReplacementStatusResponse 补课资格响应
type ReplacementStatusResponse struct {
	SessionID               string `json:"sessionId"`
	Eligible                bool   `json:"eligible"`
	CanSchedule             bool   `json:"canSchedule"`
	EligibleCount           int    `json:"eligibleCount"`
	UsedReplacements        int    `json:"usedReplacements"`
	Remaining               int    `json:"remaining"`
	ReplacementSessionID    string `json:"replacementSessionId,omitempty"`
	ReplacementForSessionID string `json:"replacementForSessionId,omitempty"`
}

// DeleteSessionResponse 删除课次响应
type DeleteSessionResponse struct {
	Session         model.Session `json:"session"`
	UnlinkedSession string        `json:"unlinkedSessionId,omitempty"`
}
