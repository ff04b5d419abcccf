package service

import (
	"context"

	"go.uber.org/zap"

	"lesson-tracker/config"
	"lesson-tracker/internal/repository"
)

// Service 所有 Service 的聚合入口，共享同一个 Store
type Service struct {
	Store   *Store
	Course  CourseService
	Session SessionService
	Stats   StatsService
	Data    DataService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
	opts ...StoreOption,
) *Service {
	store := NewStore(repo, &cfg.Store, logger, opts...)
	return &Service{
		Store:   store,
		Course:  NewCourseService(store, logger),
		Session: NewSessionService(store, logger),
		Stats:   NewStatsService(store),
		Data:    NewDataService(store, logger),
		Export:  NewExportService(store, logger),
	}
}

// Load 启动时载入数据快照
func (s *Service) Load(ctx context.Context) {
	s.Store.Load(ctx)
}

// Close 落盘挂起的修改
func (s *Service) Close() {
	s.Store.Close()
}
