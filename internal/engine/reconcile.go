package engine

import (
	"slices"

	"lesson-tracker/internal/model"
)

// ChangeKind 课程编辑的变更分类（按优先级只命中一个）
type ChangeKind string

const (
	ChangeLessonCount ChangeKind = "lesson_count" // 课次上限变化：全量重建常规课次
	ChangeDaysOfWeek  ChangeKind = "days_of_week" // 上课星期变化：保留历史，重建今天起的课次
	ChangeEndDate     ChangeKind = "end_date"     // 截止日期变化：删除新截止日期之后的常规课次
	ChangeRename      ChangeKind = "rename"       // 仅改名
	ChangeNone        ChangeKind = "none"
)

// ReconcileResult 对账结果
type ReconcileResult struct {
	Kind     ChangeKind
	Sessions []model.Session // 全部课次（其他课程的课次原样保留）
	Added    int
	Removed  int
}

// Classify 按优先级判定变更类型
func Classify(old, updated model.Course) ChangeKind {
	switch {
	case old.TotalLessons != updated.TotalLessons && updated.TotalLessons > 0:
		return ChangeLessonCount
	case !slices.Equal(old.WeekdaySet(), updated.WeekdaySet()):
		return ChangeDaysOfWeek
	case old.EndDate != updated.EndDate && updated.EndDate != "":
		return ChangeEndDate
	case old.Name != updated.Name:
		return ChangeRename
	default:
		return ChangeNone
	}
}

// Reconcile 课程编辑后对账课次。
//
// 补课课次在任何分支下都不会被删除。课次上限与星期变化分支不回写历史课次的
// courseName，历史课次保留编辑前的名称；截止日期与改名分支会同步名称。
func Reconcile(old, updated model.Course, sessions []model.Session, today string, newID IDFunc) ReconcileResult {
	kind := Classify(old, updated)
	courseID := updated.ID
	before := countCourse(sessions, courseID)

	var out []model.Session
	var added []model.Session

	switch kind {
	case ChangeLessonCount:
		out = filterSessions(sessions, func(s model.Session) bool {
			return s.CourseID != courseID || s.IsReplacement
		})
		added = generateFrom(updated, updated.StartDate, Limits{TotalLessons: updated.TotalLessons}, newID)

	case ChangeDaysOfWeek:
		past := 0
		for _, s := range sessions {
			if s.CourseID == courseID && s.Date < today {
				past++
			}
		}
		out = filterSessions(sessions, func(s model.Session) bool {
			return s.CourseID != courseID || s.Date < today || s.IsReplacement
		})
		added = generateFrom(updated, today, Limits{
			TotalLessons: updated.TotalLessons,
			Consumed:     past,
			EndDate:      updated.EndDate,
		}, newID)

	case ChangeEndDate:
		out = filterSessions(sessions, func(s model.Session) bool {
			return s.CourseID != courseID || s.Date <= updated.EndDate || s.IsReplacement
		})
		if old.Name != updated.Name {
			out = RenameSessions(out, courseID, updated.Name)
		}

	case ChangeRename:
		out = RenameSessions(sessions, courseID, updated.Name)

	default:
		out = slices.Clone(sessions)
	}

	kept := countCourse(out, courseID)
	out = append(out, added...)

	return ReconcileResult{
		Kind:     kind,
		Sessions: out,
		Added:    len(added),
		Removed:  before - kept,
	}
}

// RenameSessions 将课程名同步到该课程的全部课次
func RenameSessions(sessions []model.Session, courseID, name string) []model.Session {
	out := make([]model.Session, len(sessions))
	for i, s := range sessions {
		if s.CourseID == courseID {
			s.CourseName = name
		}
		out[i] = s
	}
	return out
}

// DeleteCourseSessions 删除课程时无条件级联删除其全部课次（含补课）
func DeleteCourseSessions(sessions []model.Session, courseID string) ([]model.Session, int) {
	out := filterSessions(sessions, func(s model.Session) bool {
		return s.CourseID != courseID
	})
	return out, len(sessions) - len(out)
}

func filterSessions(sessions []model.Session, keep func(model.Session) bool) []model.Session {
	out := make([]model.Session, 0, len(sessions))
	for _, s := range sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func countCourse(sessions []model.Session, courseID string) int {
	n := 0
	for _, s := range sessions {
		if s.CourseID == courseID {
			n++
		}
	}
	return n
}
