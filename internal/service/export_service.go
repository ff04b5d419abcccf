package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"lesson-tracker/internal/engine"
	"lesson-tracker/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSessions   = errors.New("暂无可导出的课次")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
//   - Excel：「课次」Sheet 按日期升序列出课次，「统计」Sheet 为按课程名分组的统计
//   - ICS：每个课次一个全天事件，可导入日历应用
//   - courseID 为空时导出全部课程
type ExportService interface {
	ExportExcel(ctx context.Context, courseID string) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context, courseID string) ([]byte, string, error)
}

type exportService struct {
	store  *Store
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(store *Store, logger *zap.Logger) ExportService {
	return &exportService{store: store, logger: logger}
}

var weekdayNames = [7]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

var reasonNames = map[model.AbsenceReason]string{
	model.ReasonPersonal: "个人原因",
	model.ReasonProvider: "机构原因",
	model.ReasonHoliday:  "节假日",
	model.ReasonExternal: "外部原因",
	model.ReasonOther:    "其他",
}

// ═══════════════════════════════════════════════════════════
// ExportExcel 导出课次与统计为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportExcel(_ context.Context, courseID string) (*bytes.Buffer, string, error) {
	sessions, title, err := s.collect(courseID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 1. 课次 Sheet
	const sessionSheet = "课次"
	idx, _ := f.NewSheet(sessionSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"日期", "星期", "课程", "类型", "出勤", "缺勤原因", "备注", "补课日期"}
	widths := []float64{12, 8, 18, 8, 8, 12, 30, 12}
	for i, h := range headers {
		f.SetCellValue(sessionSheet, cell(colName(i), 1), h)
		f.SetColWidth(sessionSheet, colName(i), colName(i), widths[i])
	}
	f.SetCellStyle(sessionSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	dateByID := make(map[string]string, len(sessions))
	for _, sess := range sessions {
		dateByID[sess.ID] = sess.Date
	}

	row := 2
	for _, sess := range sessions {
		kind := "常规"
		if sess.IsReplacement {
			kind = "补课"
		}
		status, reason, details := attendanceText(sess.Attendance)

		values := []any{sess.Date, weekdayText(sess.Date), sess.CourseName, kind, status, reason, details, dateByID[sess.ReplacementSessionID]}
		for i, v := range values {
			f.SetCellValue(sessionSheet, cell(colName(i), row), v)
		}
		row++
	}
	f.SetPanes(sessionSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	// 2. 统计 Sheet
	const statsSheet = "统计"
	f.NewSheet(statsSheet)
	statHeaders := []string{"课程", "总课次", "常规", "补课", "出勤", "缺勤", "待定", "待定(常规)", "待定(补课)", "已消耗", "可补课"}
	for i, h := range statHeaders {
		f.SetCellValue(statsSheet, cell(colName(i), 1), h)
	}
	f.SetColWidth(statsSheet, "A", "A", 18)
	f.SetColWidth(statsSheet, "B", colName(len(statHeaders)-1), 11)
	f.SetCellStyle(statsSheet, "A1", cell(colName(len(statHeaders)-1), 1), headerStyle)

	row = 2
	for _, st := range engine.Aggregate(sessions) {
		values := []any{st.CourseName, st.Total, st.Regular, st.Replacements, st.Present, st.Absent,
			st.Pending, st.PendingRegular, st.PendingReplacement, st.Used, st.MakeupEligible}
		for i, v := range values {
			f.SetCellValue(statsSheet, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("课次_%s.xlsx", title), nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS 导出课次为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(_ context.Context, courseID string) ([]byte, string, error) {
	sessions, title, err := s.collect(courseID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//lesson-tracker//课次导出//ZH")
	cal.SetXWRCalName(title)

	stamp := s.store.now().UTC()
	for _, sess := range sessions {
		day, ok := engine.ParseDate(sess.Date)
		if !ok {
			s.logger.Warn("跳过日期无效的课次", zap.String("session_id", sess.ID), zap.String("date", sess.Date))
			continue
		}

		evt := cal.AddEvent(sess.ID + "@lesson-tracker")
		evt.SetDtStampTime(stamp)
		evt.SetAllDayStartAt(day)
		evt.SetAllDayEndAt(day.AddDate(0, 0, 1))

		summary := sess.CourseName
		if sess.IsReplacement {
			summary += "（补课）"
		}
		evt.SetSummary(summary)

		status, reason, details := attendanceText(sess.Attendance)
		var desc []string
		if status != "" {
			desc = append(desc, "出勤："+status)
		}
		if reason != "" {
			desc = append(desc, "原因："+reason)
		}
		if details != "" {
			desc = append(desc, details)
		}
		if len(desc) > 0 {
			evt.SetDescription(strings.Join(desc, "\n"))
		}
		if sess.Attendance != nil && sess.Attendance.Status == model.StatusAbsent {
			evt.SetStatus(ics.ObjectStatusCancelled)
		}
	}

	return []byte(cal.Serialize()), fmt.Sprintf("课次_%s.ics", title), nil
}

// collect 取出待导出课次（按日期升序），返回文件名中的标题
func (s *exportService) collect(courseID string) ([]model.Session, string, error) {
	st := s.store.Snapshot()

	title := "全部课程"
	if courseID != "" {
		idx := courseIndex(st.Courses, courseID)
		if idx < 0 {
			return nil, "", ErrCourseNotFound
		}
		title = st.Courses[idx].Name
	}

	var sessions []model.Session
	for _, sess := range st.Sessions {
		if courseID == "" || sess.CourseID == courseID {
			sessions = append(sessions, sess)
		}
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	slices.SortStableFunc(sessions, func(a, b model.Session) int {
		return strings.Compare(a.Date, b.Date)
	})
	return sessions, title, nil
}

// ── 辅助函数 ──

func attendanceText(a *model.AttendanceRecord) (status, reason, details string) {
	if a == nil {
		return "", "", ""
	}
	switch a.Status {
	case model.StatusPresent:
		status = "出勤"
	case model.StatusAbsent:
		status = "缺勤"
	}
	return status, reasonNames[a.Reason], a.Details
}

func weekdayText(date string) string {
	t, ok := engine.ParseDate(date)
	if !ok {
		return ""
	}
	return weekdayNames[t.Weekday()]
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
