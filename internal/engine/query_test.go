package engine

import (
	"slices"
	"testing"

	"lesson-tracker/internal/model"
)

func querySessions() []model.Session {
	return []model.Session{
		{ID: "a1", CourseID: "a", Date: "2026-03-02"},
		{ID: "a2", CourseID: "a", Date: "2026-03-12"},
		{ID: "a3", CourseID: "a", Date: "2026-03-10"},
		{ID: "b1", CourseID: "b", Date: "2026-03-09"},
		{ID: "b2", CourseID: "b", Date: "2026-03-20"},
		{ID: "b3", CourseID: "b", Date: "2026-03-27"},
	}
}

func ids(sessions []model.Session) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}

func TestNextSessionIDs(t *testing.T) {
	next := NextSessionIDs(querySessions(), "2026-03-10")

	if len(next) != 2 || !next["a3"] || !next["b2"] {
		t.Errorf("期望 a3、b2，实际 %v", next)
	}
}

func TestFilterSessions_Default(t *testing.T) {
	got := FilterSessions(querySessions(), SessionFilter{}, "2026-03-10")
	// 今天及以前 + 每门课的下一次课，按日期倒序
	want := []string{"b2", "a3", "b1", "a1"}
	if !slices.Equal(ids(got), want) {
		t.Errorf("期望 %v，实际 %v", want, ids(got))
	}
}

func TestFilterSessions_ShowFutureByCourse(t *testing.T) {
	got := FilterSessions(querySessions(), SessionFilter{CourseID: "b", ShowFuture: true}, "2026-03-10")
	want := []string{"b3", "b2", "b1"}
	if !slices.Equal(ids(got), want) {
		t.Errorf("期望 %v，实际 %v", want, ids(got))
	}
}

func TestInspectReplacement(t *testing.T) {
	_, sessions := setupReplacement()

	view, ok := InspectReplacement(sessions, "s-1")
	if !ok {
		t.Fatal("InspectReplacement 应找到课次")
	}
	if !view.Eligible || !view.CanSchedule {
		t.Errorf("s-1 应可补课: %+v", view)
	}
	if view.Entitlement.EligibleCount != 2 || view.Entitlement.UsedReplacements != 0 {
		t.Errorf("额度错误: %+v", view.Entitlement)
	}

	view, _ = InspectReplacement(sessions, "s-2")
	if view.Eligible || view.CanSchedule {
		t.Errorf("个人原因缺勤不应可补课: %+v", view)
	}

	if _, ok := InspectReplacement(sessions, "missing"); ok {
		t.Error("不存在的课次应返回 false")
	}
}
