package model

// AbsenceReason 缺勤原因（封闭枚举）
type AbsenceReason string

const (
	ReasonPersonal AbsenceReason = "personal" // 个人原因：消耗课时，不享有补课权
	ReasonProvider AbsenceReason = "provider"
	ReasonHoliday  AbsenceReason = "holiday"
	ReasonExternal AbsenceReason = "external"
	ReasonOther    AbsenceReason = "other"
)

// AttendanceStatus 出勤状态
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord 出勤记录
type AttendanceRecord struct {
	Status  AttendanceStatus `json:"status"`
	Reason  AbsenceReason    `json:"reason,omitempty"`
	Details string           `json:"details,omitempty"`
}

// Session 单次课（某课程在某日期的一次上课）
//
// ReplacementSessionID / ReplacementForSessionID 构成双向链接：
// 原缺勤课指向补课，补课指回原缺勤课，两端必须同时维护。
type Session struct {
	ID                      string            `json:"id"`
	CourseID                string            `json:"courseId"`
	CourseName              string            `json:"courseName"` // Course.Name 的冗余副本，改名时需同步
	Date                    string            `json:"date"`
	Attendance              *AttendanceRecord `json:"attendance,omitempty"`
	IsReplacement           bool              `json:"isReplacement,omitempty"`
	ReplacementForSessionID string            `json:"replacementForSessionId,omitempty"`
	ReplacementSessionID    string            `json:"replacementSessionId,omitempty"`
}

// IsPending 尚未记录出勤
func (s *Session) IsPending() bool {
	return s.Attendance == nil || s.Attendance.Status == ""
}

// HasStatus 判断出勤状态
func (s *Session) HasStatus(status AttendanceStatus) bool {
	return s.Attendance != nil && s.Attendance.Status == status
}

// IsPersonalAbsence 个人原因缺勤
func (s *Session) IsPersonalAbsence() bool {
	return s.HasStatus(StatusAbsent) && s.Attendance.Reason == ReasonPersonal
}

// IsEligibleAbsence 可补课的缺勤：缺勤、已填写原因且原因不是 personal
func (s *Session) IsEligibleAbsence() bool {
	return s.HasStatus(StatusAbsent) &&
		s.Attendance.Reason != "" &&
		s.Attendance.Reason != ReasonPersonal
}
