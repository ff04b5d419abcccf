package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/model"
	"lesson-tracker/internal/service"
	"lesson-tracker/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock CourseService ──

type mockCourseService struct {
	listResult   []model.Course
	getResult    *model.Course
	getErr       error
	createResult *dto.CreateCourseResponse
	createErr    error
	updateResult *dto.UpdateCourseResponse
	updateErr    error
	deleteResult *dto.DeleteCourseResponse
	deleteErr    error

	lastCreate *dto.CourseRequest
}

func (m *mockCourseService) List(_ context.Context) []model.Course { return m.listResult }
func (m *mockCourseService) GetByID(_ context.Context, _ string) (*model.Course, error) {
	return m.getResult, m.getErr
}
func (m *mockCourseService) Create(_ context.Context, req *dto.CourseRequest) (*dto.CreateCourseResponse, error) {
	m.lastCreate = req
	return m.createResult, m.createErr
}
func (m *mockCourseService) Update(_ context.Context, _ string, _ *dto.CourseRequest) (*dto.UpdateCourseResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockCourseService) Delete(_ context.Context, _ string) (*dto.DeleteCourseResponse, error) {
	return m.deleteResult, m.deleteErr
}

// ── Mock SessionService ──

type mockSessionService struct {
	listResult        []dto.SessionResponse
	nextResult        []dto.SessionResponse
	statusResult      *dto.ReplacementStatusResponse
	statusErr         error
	replacementResult *model.Session
	replacementErr    error
	attendanceResult  *dto.UpdateAttendanceResponse
	attendanceErr     error
	dateResult        *model.Session
	dateErr           error
	deleteResult      *dto.DeleteSessionResponse
	deleteErr         error

	lastList       *dto.SessionListRequest
	lastAttendance *dto.UpdateAttendanceRequest
}

func (m *mockSessionService) List(_ context.Context, req *dto.SessionListRequest) []dto.SessionResponse {
	m.lastList = req
	return m.listResult
}
func (m *mockSessionService) Next(_ context.Context) []dto.SessionResponse { return m.nextResult }
func (m *mockSessionService) ReplacementStatus(_ context.Context, _ string) (*dto.ReplacementStatusResponse, error) {
	return m.statusResult, m.statusErr
}
func (m *mockSessionService) ScheduleReplacement(_ context.Context, _ string) (*model.Session, error) {
	return m.replacementResult, m.replacementErr
}
func (m *mockSessionService) UpdateAttendance(_ context.Context, _ string, req *dto.UpdateAttendanceRequest) (*dto.UpdateAttendanceResponse, error) {
	m.lastAttendance = req
	return m.attendanceResult, m.attendanceErr
}
func (m *mockSessionService) UpdateDate(_ context.Context, _ string, _ *dto.UpdateSessionDateRequest) (*model.Session, error) {
	return m.dateResult, m.dateErr
}
func (m *mockSessionService) Delete(_ context.Context, _ string) (*dto.DeleteSessionResponse, error) {
	return m.deleteResult, m.deleteErr
}

// ── Mock DataService ──

type mockDataService struct {
	state    *model.State
	replaced *dto.ReplaceDataRequest
}

func (m *mockDataService) Get(_ context.Context) *model.State { return m.state }
func (m *mockDataService) Replace(_ context.Context, req *dto.ReplaceDataRequest) {
	m.replaced = req
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	data     []byte
	filename string
	err      error
}

func (m *mockExportService) ExportExcel(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportICS(_ context.Context, _ string) ([]byte, string, error) {
	return m.data, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(method, route, target string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r := gin.New()
	r.Handle(method, route, h)
	r.ServeHTTP(w, req)
	return w
}

func validCourseRequest() dto.CourseRequest {
	return dto.CourseRequest{
		Name:         "钢琴",
		StartDate:    "2026-03-02",
		DaysOfWeek:   []int{1, 3},
		TotalLessons: 10,
	}
}

// ═══════════════════════════════════════════════════════════
// CourseHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCourseHandler_Create_Success(t *testing.T) {
	mock := &mockCourseService{
		createResult: &dto.CreateCourseResponse{Course: model.Course{ID: "c1", Name: "钢琴"}, Generated: 10},
	}
	h := NewCourseHandler(mock)

	w := serve("POST", "/courses", "/courses", jsonBody(validCourseRequest()), h.CreateCourse)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if mock.lastCreate == nil || mock.lastCreate.TotalLessons != 10 {
		t.Errorf("请求未正确传递: %+v", mock.lastCreate)
	}
}

func TestCourseHandler_Create_ValidationFailed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *dto.CourseRequest)
	}{
		{"日期格式错误", func(r *dto.CourseRequest) { r.StartDate = "03/02/2026" }},
		{"星期越界", func(r *dto.CourseRequest) { r.DaysOfWeek = []int{9} }},
		{"缺少结束条件", func(r *dto.CourseRequest) { r.TotalLessons = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCourseService{}
			h := NewCourseHandler(mock)

			req := validCourseRequest()
			tt.mutate(&req)
			w := serve("POST", "/courses", "/courses", jsonBody(req), h.CreateCourse)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if resp := parseResponse(w); resp.Code != response.CodeInvalidParams {
				t.Errorf("expected code %d, got %d", response.CodeInvalidParams, resp.Code)
			}
			if mock.lastCreate != nil {
				t.Error("校验失败时不应调用 Service")
			}
		})
	}
}

func TestCourseHandler_Create_BadJSON(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{})

	w := serve("POST", "/courses", "/courses", strings.NewReader("invalid json"), h.CreateCourse)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCourseHandler_Create_InvalidRange(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{createErr: service.ErrInvalidDateRange})

	w := serve("POST", "/courses", "/courses", jsonBody(validCourseRequest()), h.CreateCourse)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != CodeInvalidDateRange {
		t.Errorf("expected code %d, got %d", CodeInvalidDateRange, resp.Code)
	}
}

func TestCourseHandler_Get_NotFound(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{getErr: service.ErrCourseNotFound})

	w := serve("GET", "/courses/:id", "/courses/missing", nil, h.GetCourse)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != CodeCourseNotFound {
		t.Errorf("expected code %d, got %d", CodeCourseNotFound, resp.Code)
	}
}

func TestCourseHandler_Update_Success(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{
		updateResult: &dto.UpdateCourseResponse{ChangeKind: "rename"},
	})

	w := serve("PUT", "/courses/:id", "/courses/c1", jsonBody(validCourseRequest()), h.UpdateCourse)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCourseHandler_Delete_InternalError(t *testing.T) {
	h := NewCourseHandler(&mockCourseService{deleteErr: errors.New("unexpected")})

	w := serve("DELETE", "/courses/:id", "/courses/c1", nil, h.DeleteCourse)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SessionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSessionHandler_List_Query(t *testing.T) {
	mock := &mockSessionService{listResult: []dto.SessionResponse{}}
	h := NewSessionHandler(mock)

	w := serve("GET", "/sessions", "/sessions?course_id=c1&show_future=true", nil, h.ListSessions)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.lastList == nil || mock.lastList.CourseID != "c1" || !mock.lastList.ShowFuture {
		t.Errorf("查询参数未正确绑定: %+v", mock.lastList)
	}
}

func TestSessionHandler_ScheduleReplacement_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"课次不存在", service.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound},
		{"不符合条件", service.ErrReplacementNotAllowed, http.StatusUnprocessableEntity, CodeReplacementDenied},
		{"额度用完", service.ErrReplacementBudgetExhausted, http.StatusUnprocessableEntity, CodeReplacementBudget},
		{"无可用日期", service.ErrNoReplacementSlot, http.StatusUnprocessableEntity, CodeNoReplacementSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSessionHandler(&mockSessionService{replacementErr: tt.err})

			w := serve("POST", "/sessions/:id/replacement", "/sessions/s1/replacement", nil, h.ScheduleReplacement)

			if w.Code != tt.wantHTTP {
				t.Errorf("expected %d, got %d", tt.wantHTTP, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestSessionHandler_ScheduleReplacement_Success(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{
		replacementResult: &model.Session{ID: "r1", IsReplacement: true, ReplacementForSessionID: "s1"},
	})

	w := serve("POST", "/sessions/:id/replacement", "/sessions/s1/replacement", nil, h.ScheduleReplacement)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestSessionHandler_UpdateAttendance_ConfirmRequired(t *testing.T) {
	mock := &mockSessionService{attendanceErr: service.ErrReplacementConfirmRequired}
	h := NewSessionHandler(mock)

	w := serve("PUT", "/sessions/:id/attendance", "/sessions/s1/attendance",
		jsonBody(dto.UpdateAttendanceRequest{Status: "present"}), h.UpdateAttendance)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != CodeConfirmRequired {
		t.Errorf("expected code %d, got %d", CodeConfirmRequired, resp.Code)
	}
}

func TestSessionHandler_UpdateAttendance_InvalidReason(t *testing.T) {
	mock := &mockSessionService{}
	h := NewSessionHandler(mock)

	w := serve("PUT", "/sessions/:id/attendance", "/sessions/s1/attendance",
		jsonBody(map[string]string{"status": "absent", "reason": "sick"}), h.UpdateAttendance)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if mock.lastAttendance != nil {
		t.Error("校验失败时不应调用 Service")
	}
}

func TestSessionHandler_UpdateDate_Invalid(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{})

	w := serve("PUT", "/sessions/:id/date", "/sessions/s1/date",
		jsonBody(dto.UpdateSessionDateRequest{Date: "2026-13-01"}), h.UpdateDate)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSessionHandler_Delete_NotFound(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{deleteErr: service.ErrSessionNotFound})

	w := serve("DELETE", "/sessions/:id", "/sessions/missing", nil, h.DeleteSession)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DataHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDataHandler_GetData_RawShape(t *testing.T) {
	h := NewDataHandler(&mockDataService{state: model.EmptyState()})

	w := serve("GET", "/api/data", "/api/data", nil, h.GetData)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"courses":[],"sessions":[]}` {
		t.Errorf("期望裸快照 JSON，实际=%s", got)
	}
}

func TestDataHandler_ReplaceData(t *testing.T) {
	mock := &mockDataService{}
	h := NewDataHandler(mock)

	body := `{"courses":[{"id":"c1","name":"钢琴","startDate":"2026-03-02","daysOfWeek":[1]}],"sessions":[]}`
	w := serve("POST", "/api/data", "/api/data", strings.NewReader(body), h.ReplaceData)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"success":true}` {
		t.Errorf("期望 {\"success\":true}，实际=%s", got)
	}
	if mock.replaced == nil || len(mock.replaced.Courses) != 1 {
		t.Errorf("请求未正确传递: %+v", mock.replaced)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportExcel_Success(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("xlsx-content"),
		filename: "课次_全部课程.xlsx",
	})

	w := serve("GET", "/export/sessions.xlsx", "/export/sessions.xlsx", nil, h.ExportExcel)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("Content-Type 错误: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") {
		t.Errorf("Content-Disposition 错误: %s", cd)
	}
	if w.Body.String() != "xlsx-content" {
		t.Errorf("响应体错误: %s", w.Body.String())
	}
}

func TestExportHandler_ExportICS_NoSessions(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrExportNoSessions})

	w := serve("GET", "/export/sessions.ics", "/export/sessions.ics?course_id=c1", nil, h.ExportICS)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != CodeExportNoSessions {
		t.Errorf("expected code %d, got %d", CodeExportNoSessions, resp.Code)
	}
}
