package dto

import "lesson-tracker/internal/model"

// ── 课程模块 DTO ──

// CourseRequest 创建 / 编辑课程请求（编辑为整体覆盖）
// endDate 与 totalLessons 至少填写一个
type CourseRequest struct {
	Name         string `json:"name"         binding:"required,min=1,max=100"`
	StartDate    string `json:"startDate"    binding:"required,isodate"`
	DaysOfWeek   []int  `json:"daysOfWeek"   binding:"required,min=1,max=7,dive,weekday"`
	EndDate      string `json:"endDate"      binding:"required_without=TotalLessons,isodate"`
	TotalLessons int    `json:"totalLessons" binding:"required_without=EndDate,gte=0,lte=1000"`
}

// ToModel 转换为课程模型
func (r *CourseRequest) ToModel(id string) model.Course {
	return model.Course{
		ID:           id,
		Name:         r.Name,
		StartDate:    r.StartDate,
		DaysOfWeek:   r.DaysOfWeek,
		EndDate:      r.EndDate,
		TotalLessons: r.TotalLessons,
	}
}

// CreateCourseResponse 创建课程响应
type CreateCourseResponse struct {
	Course    model.Course `json:"course"`
	Generated int          `json:"generated"`
}

// UpdateCourseResponse 编辑课程响应
type UpdateCourseResponse struct {
	Course     model.Course `json:"course"`
	ChangeKind string       `json:"changeKind"`
	Added      int          `json:"added"`
	Removed    int          `json:"removed"`
}

// DeleteCourseResponse 删除课程响应
type DeleteCourseResponse struct {
	RemovedSessions int `json:"removedSessions"`
}
