package dto

// CourseStatsResponse 单个课程分组的统计
type CourseStatsResponse struct {
	CourseName         string `json:"courseName"`
	Total              int    `json:"total"`
	Regular            int    `json:"regular"`
	Replacements       int    `json:"replacements"`
	Present            int    `json:"present"`
	Absent             int    `json:"absent"`
	Pending            int    `json:"pending"`
	PendingRegular     int    `json:"pendingRegular"`
	PendingReplacement int    `json:"pendingReplacement"`
	Used               int    `json:"used"`
	MakeupEligible     int    `json:"makeupEligible"`
}
