package engine

import "lesson-tracker/internal/model"

// CourseStats 单个课程分组的统计
type CourseStats struct {
	CourseName         string
	Total              int
	Regular            int
	Replacements       int
	Present            int
	Absent             int
	Pending            int
	PendingRegular     int
	PendingReplacement int
	Used               int // 消耗课时：出勤 + 个人原因缺勤
	MakeupEligible     int // 可补课缺勤：缺勤且原因非 personal
}

// Aggregate 按 courseName（不是 courseId）分组统计，分组顺序为首次出现顺序。
// 改名未同步的历史课次会形成独立分组，同名课程会被合并。
func Aggregate(sessions []model.Session) []CourseStats {
	index := make(map[string]int)
	var groups []CourseStats

	for i := range sessions {
		s := &sessions[i]
		gi, ok := index[s.CourseName]
		if !ok {
			gi = len(groups)
			index[s.CourseName] = gi
			groups = append(groups, CourseStats{CourseName: s.CourseName})
		}
		g := &groups[gi]

		g.Total++
		if s.IsReplacement {
			g.Replacements++
		}
		switch {
		case s.HasStatus(model.StatusPresent):
			g.Present++
		case s.HasStatus(model.StatusAbsent):
			g.Absent++
		case s.IsPending():
			g.Pending++
			if s.IsReplacement {
				g.PendingReplacement++
			} else {
				g.PendingRegular++
			}
		}
		if s.IsPersonalAbsence() {
			g.Used++
		}
		if s.IsEligibleAbsence() {
			g.MakeupEligible++
		}
	}

	for i := range groups {
		groups[i].Regular = groups[i].Total - groups[i].Replacements
		groups[i].Used += groups[i].Present
	}
	return groups
}
