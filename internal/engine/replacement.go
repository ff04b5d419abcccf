package engine

import (
	"lesson-tracker/internal/model"
)

// MaxReplacementScanDays 寻找补课日期时最多向后扫描的天数
const MaxReplacementScanDays = 100

// Entitlement 课程级补课额度
type Entitlement struct {
	EligibleCount    int // 可补课缺勤数
	UsedReplacements int // 已安排的补课数
}

// Remaining 剩余可安排补课数
func (e Entitlement) Remaining() int {
	if e.UsedReplacements >= e.EligibleCount {
		return 0
	}
	return e.EligibleCount - e.UsedReplacements
}

// CourseEntitlement 统计某课程的补课额度（按 courseId）
func CourseEntitlement(sessions []model.Session, courseID string) Entitlement {
	var e Entitlement
	for i := range sessions {
		s := &sessions[i]
		if s.CourseID != courseID {
			continue
		}
		if s.IsEligibleAbsence() {
			e.EligibleCount++
		}
		if s.IsReplacement {
			e.UsedReplacements++
		}
	}
	return e
}

// ReplacementOutcome 安排补课的结果
type ReplacementOutcome int

const (
	ReplacementCreated         ReplacementOutcome = iota
	ReplacementNotFound                           // 课次或课程无法解析
	ReplacementNotEligible                        // 本课次缺勤原因不符合，或已有补课
	ReplacementBudgetExhausted                    // 课程补课额度已用完
	ReplacementNoSlot                             // 100 天内没有匹配的上课日
)

// ReplacementResult 安排补课的返回值；非 Created 时 Sessions 为入参原样
type ReplacementResult struct {
	Outcome     ReplacementOutcome
	Sessions    []model.Session
	Replacement *model.Session
}

// CanScheduleReplacement 判断能否为指定课次安排补课：
// 本课次自身可补课、尚未链接补课，且课程级额度未用完。
func CanScheduleReplacement(sessions []model.Session, sessionID string) bool {
	return checkReplacement(sessions, sessionID) == ReplacementCreated
}

func checkReplacement(sessions []model.Session, sessionID string) ReplacementOutcome {
	idx := indexOf(sessions, sessionID)
	if idx < 0 {
		return ReplacementNotFound
	}
	original := &sessions[idx]
	if !original.IsEligibleAbsence() || original.ReplacementSessionID != "" {
		return ReplacementNotEligible
	}
	e := CourseEntitlement(sessions, original.CourseID)
	if e.UsedReplacements >= e.EligibleCount {
		return ReplacementBudgetExhausted
	}
	return ReplacementCreated
}

// ScheduleReplacement 为缺勤课次安排补课。
//
// 补课日期：取该课程日期最晚的课次（按 ISO 字符串比较），从次日起最多向后扫描
// 100 天，取第一个落在上课星期内的日期。新补课与原课次互相链接。
func ScheduleReplacement(courses []model.Course, sessions []model.Session, sessionID string, newID IDFunc) ReplacementResult {
	refuse := func(o ReplacementOutcome) ReplacementResult {
		return ReplacementResult{Outcome: o, Sessions: sessions}
	}

	if o := checkReplacement(sessions, sessionID); o != ReplacementCreated {
		return refuse(o)
	}
	original := sessions[indexOf(sessions, sessionID)]

	course, ok := findCourse(courses, original.CourseID)
	if !ok {
		return refuse(ReplacementNotFound)
	}

	last := ""
	for _, s := range sessions {
		if s.CourseID == course.ID && s.Date > last {
			last = s.Date
		}
	}
	start, ok := ParseDate(last)
	if !ok {
		return refuse(ReplacementNotFound)
	}

	set := weekdaySet(course.DaysOfWeek)
	date := ""
	for i := 1; i <= MaxReplacementScanDays; i++ {
		d := start.AddDate(0, 0, i)
		if set[d.Weekday()] {
			date = FormatDate(d)
			break
		}
	}
	if date == "" {
		return refuse(ReplacementNoSlot)
	}

	replacement := model.Session{
		ID:                      newID.orDefault()(),
		CourseID:                course.ID,
		CourseName:              course.Name,
		Date:                    date,
		IsReplacement:           true,
		ReplacementForSessionID: original.ID,
	}

	out := make([]model.Session, 0, len(sessions)+1)
	for _, s := range sessions {
		if s.ID == original.ID {
			s.ReplacementSessionID = replacement.ID
		}
		out = append(out, s)
	}
	out = append(out, replacement)

	return ReplacementResult{Outcome: ReplacementCreated, Sessions: out, Replacement: &replacement}
}

// DeleteSession 删除单个课次并解除补课链接：
// 删除补课时清除原课次的 replacementSessionId；删除已链接补课的原课次时
// 清除补课的 replacementForSessionId（补课本身保留）。
func DeleteSession(sessions []model.Session, sessionID string) ([]model.Session, *model.Session) {
	idx := indexOf(sessions, sessionID)
	if idx < 0 {
		return sessions, nil
	}
	deleted := sessions[idx]

	out := make([]model.Session, 0, len(sessions)-1)
	for i, s := range sessions {
		if i == idx {
			continue
		}
		if deleted.ReplacementForSessionID != "" &&
			s.ID == deleted.ReplacementForSessionID && s.ReplacementSessionID == deleted.ID {
			s.ReplacementSessionID = ""
		}
		if deleted.ReplacementSessionID != "" &&
			s.ID == deleted.ReplacementSessionID && s.ReplacementForSessionID == deleted.ID {
			s.ReplacementForSessionID = ""
		}
		out = append(out, s)
	}
	return out, &deleted
}

// AttendanceOutcome 更新出勤的结果
type AttendanceOutcome int

const (
	AttendanceApplied         AttendanceOutcome = iota
	AttendanceNotFound                          // 课次不存在
	AttendanceConfirmRequired                   // 会删除已链接的补课，需要确认
)

// AttendanceResult 更新出勤的返回值
type AttendanceResult struct {
	Outcome              AttendanceOutcome
	Sessions             []model.Session
	RemovedReplacementID string
}

// UpdateAttendance 更新（或清除，record 为 nil）课次出勤。
//
// 已链接补课的课次改为非缺勤或清除出勤时，未确认则拒绝；确认后先删除补课
// （同时解除链接）再写入新出勤。清除出勤不会改动链接字段。
// 标记出勤时丢弃 reason/details。
func UpdateAttendance(sessions []model.Session, sessionID string, record *model.AttendanceRecord, confirmed bool) AttendanceResult {
	idx := indexOf(sessions, sessionID)
	if idx < 0 {
		return AttendanceResult{Outcome: AttendanceNotFound, Sessions: sessions}
	}
	target := sessions[idx]

	leavingAbsent := record == nil || record.Status != model.StatusAbsent
	out := sessions
	removed := ""
	if target.ReplacementSessionID != "" && leavingAbsent {
		if !confirmed {
			return AttendanceResult{Outcome: AttendanceConfirmRequired, Sessions: sessions}
		}
		removed = target.ReplacementSessionID
		out, _ = DeleteSession(sessions, removed)
	}

	out = mapSession(out, sessionID, func(s *model.Session) {
		if removed != "" {
			// 补课已不存在时也不能保留悬空的前向指针
			s.ReplacementSessionID = ""
		}
		s.Attendance = normalizeAttendance(record)
	})

	return AttendanceResult{Outcome: AttendanceApplied, Sessions: out, RemovedReplacementID: removed}
}

// UpdateSessionDate 修改课次日期，课次不存在时返回 false
func UpdateSessionDate(sessions []model.Session, sessionID, date string) ([]model.Session, bool) {
	if indexOf(sessions, sessionID) < 0 {
		return sessions, false
	}
	return mapSession(sessions, sessionID, func(s *model.Session) {
		s.Date = date
	}), true
}

func normalizeAttendance(record *model.AttendanceRecord) *model.AttendanceRecord {
	if record == nil {
		return nil
	}
	r := *record
	if r.Status == model.StatusPresent {
		r.Reason = ""
		r.Details = ""
	}
	return &r
}

func mapSession(sessions []model.Session, sessionID string, fn func(*model.Session)) []model.Session {
	out := make([]model.Session, len(sessions))
	for i, s := range sessions {
		if s.ID == sessionID {
			fn(&s)
		}
		out[i] = s
	}
	return out
}

func indexOf(sessions []model.Session, sessionID string) int {
	for i := range sessions {
		if sessions[i].ID == sessionID {
			return i
		}
	}
	return -1
}

func findCourse(courses []model.Course, courseID string) (model.Course, bool) {
	for _, c := range courses {
		if c.ID == courseID {
			return c, true
		}
	}
	return model.Course{}, false
}
