package service

import (
	"context"
	"errors"
	"slices"

	"go.uber.org/zap"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/engine"
	"lesson-tracker/internal/model"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound   = errors.New("课程不存在")
	ErrInvalidDateRange = errors.New("截止日期早于开始日期")
)

// CourseService 课程业务接口
//
// 创建课程时一次性生成全部常规课次；编辑课程按变更类型对已有课次做增量调整，
// 删除课程会级联删除其所有课次（含补课）。
type CourseService interface {
	List(ctx context.Context) []model.Course
	GetByID(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, req *dto.CourseRequest) (*dto.CreateCourseResponse, error)
	Update(ctx context.Context, id string, req *dto.CourseRequest) (*dto.UpdateCourseResponse, error)
	Delete(ctx context.Context, id string) (*dto.DeleteCourseResponse, error)
}

type courseService struct {
	store  *Store
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(store *Store, logger *zap.Logger) CourseService {
	return &courseService{store: store, logger: logger}
}

// ────────────────────── List / GetByID ──────────────────────

func (s *courseService) List(_ context.Context) []model.Course {
	return s.store.Snapshot().Courses
}

func (s *courseService) GetByID(_ context.Context, id string) (*model.Course, error) {
	courses := s.store.Snapshot().Courses
	idx := courseIndex(courses, id)
	if idx < 0 {
		return nil, ErrCourseNotFound
	}
	c := courses[idx]
	return &c, nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(_ context.Context, req *dto.CourseRequest) (*dto.CreateCourseResponse, error) {
	if err := checkDateRange(req); err != nil {
		return nil, err
	}

	var resp dto.CreateCourseResponse
	s.store.Update(func(st *model.State) bool {
		course := req.ToModel(s.store.newID())
		generated := engine.Generate(course, s.store.newID)

		st.Courses = append(slices.Clip(st.Courses), course)
		st.Sessions = append(slices.Clip(st.Sessions), generated...)

		resp = dto.CreateCourseResponse{Course: course, Generated: len(generated)}
		return true
	})

	s.logger.Info("课程已创建",
		zap.String("course_id", resp.Course.ID),
		zap.String("name", resp.Course.Name),
		zap.Int("generated", resp.Generated),
	)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(_ context.Context, id string, req *dto.CourseRequest) (*dto.UpdateCourseResponse, error) {
	if err := checkDateRange(req); err != nil {
		return nil, err
	}

	var (
		resp  dto.UpdateCourseResponse
		found bool
	)
	today := s.store.Today()
	s.store.Update(func(st *model.State) bool {
		idx := courseIndex(st.Courses, id)
		if idx < 0 {
			return false
		}
		found = true

		old := st.Courses[idx]
		updated := req.ToModel(id)
		result := engine.Reconcile(old, updated, st.Sessions, today, s.store.newID)

		courses := slices.Clone(st.Courses)
		courses[idx] = updated
		st.Courses = courses
		st.Sessions = result.Sessions

		resp = dto.UpdateCourseResponse{
			Course:     updated,
			ChangeKind: string(result.Kind),
			Added:      result.Added,
			Removed:    result.Removed,
		}
		return true
	})
	if !found {
		return nil, ErrCourseNotFound
	}

	s.logger.Info("课程已更新",
		zap.String("course_id", id),
		zap.String("change", resp.ChangeKind),
		zap.Int("added", resp.Added),
		zap.Int("removed", resp.Removed),
	)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(_ context.Context, id string) (*dto.DeleteCourseResponse, error) {
	var (
		removed int
		found   bool
	)
	s.store.Update(func(st *model.State) bool {
		idx := courseIndex(st.Courses, id)
		if idx < 0 {
			return false
		}
		found = true
		st.Courses = slices.Delete(slices.Clone(st.Courses), idx, idx+1)
		st.Sessions, removed = engine.DeleteCourseSessions(st.Sessions, id)
		return true
	})
	if !found {
		return nil, ErrCourseNotFound
	}

	s.logger.Info("课程已删除", zap.String("course_id", id), zap.Int("removed_sessions", removed))
	return &dto.DeleteCourseResponse{RemovedSessions: removed}, nil
}

// ── 辅助函数 ──

func courseIndex(courses []model.Course, id string) int {
	return slices.IndexFunc(courses, func(c model.Course) bool { return c.ID == id })
}

func checkDateRange(req *dto.CourseRequest) error {
	if req.EndDate != "" && req.EndDate < req.StartDate {
		return ErrInvalidDateRange
	}
	return nil
}
