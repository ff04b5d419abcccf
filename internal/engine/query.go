package engine

import (
	"slices"
	"strings"

	"lesson-tracker/internal/model"
)

// NextSessionIDs 每个课程今天及以后最早的一次课
func NextSessionIDs(sessions []model.Session, today string) map[string]bool {
	upcoming := filterSessions(sessions, func(s model.Session) bool {
		return s.Date >= today
	})
	slices.SortStableFunc(upcoming, func(a, b model.Session) int {
		return strings.Compare(a.Date, b.Date)
	})

	ids := make(map[string]bool)
	seen := make(map[string]bool)
	for _, s := range upcoming {
		if !seen[s.CourseID] {
			ids[s.ID] = true
			seen[s.CourseID] = true
		}
	}
	return ids
}

// SessionFilter 课次列表筛选条件
type SessionFilter struct {
	CourseID   string // 空表示全部课程
	ShowFuture bool   // false 时只显示今天及以前的课次与每门课的下一次课
}

// FilterSessions 按条件筛选课次，按日期倒序
func FilterSessions(sessions []model.Session, f SessionFilter, today string) []model.Session {
	next := NextSessionIDs(sessions, today)
	out := filterSessions(sessions, func(s model.Session) bool {
		dateMatch := f.ShowFuture || s.Date <= today || next[s.ID]
		courseMatch := f.CourseID == "" || s.CourseID == f.CourseID
		return dateMatch && courseMatch
	})
	slices.SortStableFunc(out, func(a, b model.Session) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out
}

// ReplacementView 单个课次的补课资格视图
type ReplacementView struct {
	Eligible                bool
	CanSchedule             bool
	Entitlement             Entitlement
	ReplacementSessionID    string
	ReplacementForSessionID string
}

// InspectReplacement 查询课次的补课资格
func InspectReplacement(sessions []model.Session, sessionID string) (ReplacementView, bool) {
	idx := indexOf(sessions, sessionID)
	if idx < 0 {
		return ReplacementView{}, false
	}
	s := &sessions[idx]
	return ReplacementView{
		Eligible:                s.IsEligibleAbsence(),
		CanSchedule:             CanScheduleReplacement(sessions, sessionID),
		Entitlement:             CourseEntitlement(sessions, s.CourseID),
		ReplacementSessionID:    s.ReplacementSessionID,
		ReplacementForSessionID: s.ReplacementForSessionID,
	}, true
}
