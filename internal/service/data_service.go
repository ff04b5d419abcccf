package service

import (
	"context"

	"go.uber.org/zap"

	"lesson-tracker/internal/dto"
	"lesson-tracker/internal/model"
)

// DataService 整体快照读写（兼容旧前端的 /api/data 接口）
//
// 读返回内存中的权威快照；写整体覆盖，不做合并与并发校验，随后防抖落盘。
type DataService interface {
	Get(ctx context.Context) *model.State
	Replace(ctx context.Context, req *dto.ReplaceDataRequest)
}

type dataService struct {
	store  *Store
	logger *zap.Logger
}

// NewDataService 创建 DataService 实例
func NewDataService(store *Store, logger *zap.Logger) DataService {
	return &dataService{store: store, logger: logger}
}

func (s *dataService) Get(_ context.Context) *model.State {
	st := s.store.Snapshot()
	return &st
}

func (s *dataService) Replace(_ context.Context, req *dto.ReplaceDataRequest) {
	s.store.Update(func(st *model.State) bool {
		st.Courses = req.Courses
		st.Sessions = req.Sessions
		return true
	})

	s.logger.Info("数据快照已整体覆盖",
		zap.Int("courses", len(req.Courses)),
		zap.Int("sessions", len(req.Sessions)),
	)
}
