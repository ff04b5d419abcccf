package service

import (
	"context"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/engine"
)

// StatsService 统计业务接口
type StatsService interface {
	// Aggregate 按课程名分组统计出勤、待定、消耗课时与可补课缺勤
	Aggregate(ctx context.Context) []dto.CourseStatsResponse
}

type statsService struct {
	store *Store
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(store *Store) StatsService {
	return &statsService{store: store}
}

func (s *statsService) Aggregate(_ context.Context) []dto.CourseStatsResponse {
	return toStatsResponses(engine.Aggregate(s.store.Snapshot().Sessions))
}

func toStatsResponses(stats []engine.CourseStats) []dto.CourseStatsResponse {
	result := make([]dto.CourseStatsResponse, 0, len(stats))
	for _, st := range stats {
		result = append(result, dto.CourseStatsResponse{
			CourseName:         st.CourseName,
			Total:              st.Total,
			Regular:            st.Regular,
			Replacements:       st.Replacements,
			Present:            st.Present,
			Absent:             st.Absent,
			Pending:            st.Pending,
			PendingRegular:     st.PendingRegular,
			PendingReplacement: st.PendingReplacement,
			Used:               st.Used,
			MakeupEligible:     st.MakeupEligible,
		})
	}
	return result
}
