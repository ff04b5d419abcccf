package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"go.uber.org/zap"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/engine"
	"lesson-tracker/internal/model"
)

// ── 课次模块业务错误 ──

var (
	ErrSessionNotFound            = errors.New("课次不存在")
	ErrReplacementNotAllowed      = errors.New("该课次不符合补课条件")
	ErrReplacementBudgetExhausted = errors.New("课程补课额度已用完")
	ErrNoReplacementSlot          = errors.New("100 天内没有可安排补课的上课日")
	ErrReplacementConfirmRequired = errors.New("该课次已安排补课，修改出勤会删除补课，需要确认")
)

// SessionService 课次业务接口
type SessionService interface {
	// List 课次列表，默认只含今天及以前的课次与每门课的下一次课，按日期倒序
	List(ctx context.Context, req *dto.SessionListRequest) []dto.SessionResponse
	// Next 每门课的下一次课，按日期升序
	Next(ctx context.Context) []dto.SessionResponse
	ReplacementStatus(ctx context.Context, id string) (*dto.ReplacementStatusResponse, error)
	// ScheduleReplacement 为缺勤课次安排补课，返回新建的补课课次
	ScheduleReplacement(ctx context.Context, id string) (*model.Session, error)
	UpdateAttendance(ctx context.Context, id string, req *dto.UpdateAttendanceRequest) (*dto.UpdateAttendanceResponse, error)
	UpdateDate(ctx context.Context, id string, req *dto.UpdateSessionDateRequest) (*model.Session, error)
	Delete(ctx context.Context, id string) (*dto.DeleteSessionResponse, error)
}

type sessionService struct {
	store  *Store
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(store *Store, logger *zap.Logger) SessionService {
	return &sessionService{store: store, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *sessionService) List(_ context.Context, req *dto.SessionListRequest) []dto.SessionResponse {
	sessions := s.store.Snapshot().Sessions
	today := s.store.Today()

	filtered := engine.FilterSessions(sessions, engine.SessionFilter{
		CourseID:   req.CourseID,
		ShowFuture: req.ShowFuture,
	}, today)
	return toSessionResponses(filtered, engine.NextSessionIDs(sessions, today))
}

func (s *sessionService) Next(_ context.Context) []dto.SessionResponse {
	sessions := s.store.Snapshot().Sessions
	next := engine.NextSessionIDs(sessions, s.store.Today())

	result := make([]dto.SessionResponse, 0, len(next))
	for _, sess := range sessions {
		if next[sess.ID] {
			result = append(result, dto.SessionResponse{Session: sess, IsNext: true})
		}
	}
	slices.SortStableFunc(result, func(a, b dto.SessionResponse) int {
		return strings.Compare(a.Date, b.Date)
	})
	return result
}

func (s *sessionService) ReplacementStatus(_ context.Context, id string) (*dto.ReplacementStatusResponse, error) {
	view, ok := engine.InspectReplacement(s.store.Snapshot().Sessions, id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &dto.ReplacementStatusResponse{
		SessionID:               id,
		Eligible:                view.Eligible,
		CanSchedule:             view.CanSchedule,
		EligibleCount:           view.Entitlement.EligibleCount,
		UsedReplacements:        view.Entitlement.UsedReplacements,
		Remaining:               view.Entitlement.Remaining(),
		ReplacementSessionID:    view.ReplacementSessionID,
		ReplacementForSessionID: view.ReplacementForSessionID,
	}, nil
}

// ────────────────────── 补课 ──────────────────────

func (s *sessionService) ScheduleReplacement(_ context.Context, id string) (*model.Session, error) {
	var result engine.ReplacementResult
	s.store.Update(func(st *model.State) bool {
		result = engine.ScheduleReplacement(st.Courses, st.Sessions, id, s.store.newID)
		if result.Outcome != engine.ReplacementCreated {
			return false
		}
		st.Sessions = result.Sessions
		return true
	})

	switch result.Outcome {
	case engine.ReplacementCreated:
		s.logger.Info("补课已安排",
			zap.String("session_id", id),
			zap.String("replacement_id", result.Replacement.ID),
			zap.String("date", result.Replacement.Date),
		)
		return result.Replacement, nil
	case engine.ReplacementNotFound:
		return nil, ErrSessionNotFound
	case engine.ReplacementBudgetExhausted:
		return nil, ErrReplacementBudgetExhausted
	case engine.ReplacementNoSlot:
		s.logger.Warn("未找到可安排补课的日期", zap.String("session_id", id))
		return nil, ErrNoReplacementSlot
	default:
		return nil, ErrReplacementNotAllowed
	}
}

// ────────────────────── 出勤 / 日期 ──────────────────────

func (s *sessionService) UpdateAttendance(_ context.Context, id string, req *dto.UpdateAttendanceRequest) (*dto.UpdateAttendanceResponse, error) {
	var result engine.AttendanceResult
	s.store.Update(func(st *model.State) bool {
		result = engine.UpdateAttendance(st.Sessions, id, req.ToRecord(), req.Confirm)
		if result.Outcome != engine.AttendanceApplied {
			return false
		}
		st.Sessions = result.Sessions
		return true
	})

	switch result.Outcome {
	case engine.AttendanceNotFound:
		return nil, ErrSessionNotFound
	case engine.AttendanceConfirmRequired:
		return nil, ErrReplacementConfirmRequired
	}

	if result.RemovedReplacementID != "" {
		s.logger.Info("出勤变更，已删除关联补课",
			zap.String("session_id", id),
			zap.String("replacement_id", result.RemovedReplacementID),
		)
	}

	sess, _ := findSession(result.Sessions, id)
	return &dto.UpdateAttendanceResponse{
		Session:              sess,
		RemovedReplacementID: result.RemovedReplacementID,
	}, nil
}

func (s *sessionService) UpdateDate(_ context.Context, id string, req *dto.UpdateSessionDateRequest) (*model.Session, error) {
	var (
		updated []model.Session
		ok      bool
	)
	s.store.Update(func(st *model.State) bool {
		updated, ok = engine.UpdateSessionDate(st.Sessions, id, req.Date)
		if ok {
			st.Sessions = updated
		}
		return ok
	})
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess, _ := findSession(updated, id)
	return &sess, nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(_ context.Context, id string) (*dto.DeleteSessionResponse, error) {
	var deleted *model.Session
	s.store.Update(func(st *model.State) bool {
		st.Sessions, deleted = engine.DeleteSession(st.Sessions, id)
		return deleted != nil
	})
	if deleted == nil {
		return nil, ErrSessionNotFound
	}

	resp := &dto.DeleteSessionResponse{Session: *deleted}
	switch {
	case deleted.ReplacementForSessionID != "":
		resp.UnlinkedSession = deleted.ReplacementForSessionID
	case deleted.ReplacementSessionID != "":
		resp.UnlinkedSession = deleted.ReplacementSessionID
	}

	s.logger.Info("课次已删除",
		zap.String("session_id", id),
		zap.String("unlinked", resp.UnlinkedSession),
	)
	return resp, nil
}

// ── 辅助函数 ──

func findSession(sessions []model.Session, id string) (model.Session, bool) {
	idx := slices.IndexFunc(sessions, func(s model.Session) bool { return s.ID == id })
	if idx < 0 {
		return model.Session{}, false
	}
	return sessions[idx], true
}

func toSessionResponses(sessions []model.Session, next map[string]bool) []dto.SessionResponse {
	result := make([]dto.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, dto.SessionResponse{Session: sess, IsNext: next[sess.ID]})
	}
	return result
}
