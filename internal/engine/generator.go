package engine

import (
	"github.com/google/uuid"

	"lesson-tracker/internal/model"
)

// IDFunc 课次 ID 生成器
type IDFunc func() string

// NewID 默认 ID 生成器（UUID v4）
func NewID() string {
	return uuid.NewString()
}

func (f IDFunc) orDefault() IDFunc {
	if f == nil {
		return NewID
	}
	return f
}

// Generate 由课程定义生成全部常规课次。
// 从 StartDate 开始展开，TotalLessons 与 EndDate 中已设置的都会生效。
func Generate(course model.Course, newID IDFunc) []model.Session {
	return generateFrom(course, course.StartDate, Limits{
		TotalLessons: course.TotalLessons,
		EndDate:      course.EndDate,
	}, newID)
}

func generateFrom(course model.Course, from string, lim Limits, newID IDFunc) []model.Session {
	newID = newID.orDefault()

	sessions := make([]model.Session, 0)
	for date := range Expand(from, course.DaysOfWeek, lim) {
		sessions = append(sessions, model.Session{
			ID:         newID(),
			CourseID:   course.ID,
			CourseName: course.Name,
			Date:       date,
		})
	}
	return sessions
}
