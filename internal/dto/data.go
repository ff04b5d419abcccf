package dto

import "lesson-tracker/internal/model"

// ReplaceDataRequest 整体覆盖数据快照请求（/api/data）
type ReplaceDataRequest struct {
	Courses  []model.Course  `json:"courses"  binding:"omitempty,dive"`
	Sessions []model.Session `json:"sessions" binding:"omitempty,dive"`
}

// AckResponse 数据快照写入确认
type AckResponse struct {
	Success bool `json:"success"`
}

// ExportRequest 导出查询参数
type ExportRequest struct {
	CourseID string `form:"course_id" binding:"omitempty,max=64"`
}
