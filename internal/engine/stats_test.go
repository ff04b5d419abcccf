package engine

import (
	"testing"

	"lesson-tracker/internal/model"
)

func TestAggregate_WorkedExample(t *testing.T) {
	present := &model.AttendanceRecord{Status: model.StatusPresent}
	sessions := []model.Session{
		{ID: "1", CourseID: "c", CourseName: "钢琴", Date: "2026-03-02", Attendance: present},
		{ID: "2", CourseID: "c", CourseName: "钢琴", Date: "2026-03-04", Attendance: absent(model.ReasonOther)},
		{ID: "3", CourseID: "c", CourseName: "钢琴", Date: "2026-03-09", Attendance: absent(model.ReasonPersonal)},
		{ID: "4", CourseID: "c", CourseName: "钢琴", Date: "2026-03-11"},
		{ID: "5", CourseID: "c", CourseName: "钢琴", Date: "2026-03-16", Attendance: present, IsReplacement: true},
		{ID: "6", CourseID: "c", CourseName: "钢琴", Date: "2026-03-18", IsReplacement: true},
	}

	groups := Aggregate(sessions)
	if len(groups) != 1 {
		t.Fatalf("期望 1 个分组，实际 %d", len(groups))
	}
	want := CourseStats{
		CourseName:         "钢琴",
		Total:              6,
		Regular:            4,
		Replacements:       2,
		Present:            2,
		Absent:             2,
		Pending:            2,
		PendingRegular:     1,
		PendingReplacement: 1,
		Used:               3,
		MakeupEligible:     1,
	}
	if groups[0] != want {
		t.Errorf("期望 %+v\n实际 %+v", want, groups[0])
	}
}

func TestAggregate_GroupsByCourseName(t *testing.T) {
	sessions := []model.Session{
		{ID: "1", CourseID: "c1", CourseName: "绘画"},
		{ID: "2", CourseID: "c2", CourseName: "钢琴"},
		{ID: "3", CourseID: "c3", CourseName: "绘画"},    // 不同课程同名：合并
		{ID: "4", CourseID: "c2", CourseName: "钢琴（旧）"}, // 改名未同步：拆分
	}

	groups := Aggregate(sessions)
	if len(groups) != 3 {
		t.Fatalf("期望 3 个分组，实际 %d", len(groups))
	}
	if groups[0].CourseName != "绘画" || groups[0].Total != 2 {
		t.Errorf("分组顺序或计数错误: %+v", groups[0])
	}
	if groups[1].CourseName != "钢琴" || groups[2].CourseName != "钢琴（旧）" {
		t.Errorf("分组应按首次出现顺序排列: %+v", groups)
	}
}

func TestAggregate_Empty(t *testing.T) {
	if groups := Aggregate(nil); len(groups) != 0 {
		t.Errorf("空课次应返回空统计，实际 %+v", groups)
	}
}
